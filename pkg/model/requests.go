package model

// RequestType discriminates write-request artifacts.
type RequestType string

// The four artifact types the pipeline emits.
const (
	TypePommelModel   RequestType = "pommel-model"
	TypeCITProperties RequestType = "cit-properties"
	TypeVanillaModel  RequestType = "vanilla-model"
	TypeTextureCopy   RequestType = "texture-copy"
)

// WriteRequest is the universal intermediate artifact contributed by
// handlers. Immutable once created; consumed exactly once by merge+write.
type WriteRequest struct {
	Type    RequestType
	Path    string
	Content map[string]interface{}
	// Merge marks the request as structurally mergeable with others at
	// the same key.
	Merge bool
	// Priority breaks conflicts when no merger accepts a group. Higher
	// wins. Defaults to 0.
	Priority int
}

// RequestKey identifies a conflict group. Ownership of the final
// artifact for a key passes from many contributors to one merged result
// exactly once, at merge time.
type RequestKey struct {
	Type RequestType
	Path string
}

// Key returns the conflict-group key for the request.
func (r WriteRequest) Key() RequestKey {
	return RequestKey{Type: r.Type, Path: r.Path}
}

// Override is one predicate override entry. The downstream renderer
// evaluates the override list in order, first match wins.
type Override struct {
	Predicate map[string]float64 `json:"predicate"`
	Model     string             `json:"model"`
}

// MinecraftModel is the content shape for model write requests.
type MinecraftModel struct {
	Parent    string            `json:"parent,omitempty"`
	Textures  map[string]string `json:"textures,omitempty"`
	Overrides []Override        `json:"overrides,omitempty"`
}
