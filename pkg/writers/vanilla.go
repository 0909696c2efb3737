package writers

import (
	"path"

	"github.com/spf13/afero"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// DefaultItemParent is the generic item parent plain models inherit from
// when the request does not name one.
const DefaultItemParent = "item/generated"

// VanillaWriter serializes plain models: parent, textures, and an
// override list only when one exists.
type VanillaWriter struct {
	fs   afero.Fs
	root string
}

// Type implements Writer.
func (w *VanillaWriter) Type() model.RequestType { return model.TypeVanillaModel }

// Write implements Writer.
func (w *VanillaWriter) Write(req model.WriteRequest) (int64, error) {
	out := model.MinecraftModel{
		Parent:    contentString(req.Content, "parent"),
		Textures:  contentTextures(req.Content),
		Overrides: contentOverrides(req.Content),
	}
	if out.Parent == "" {
		out.Parent = DefaultItemParent
	}
	data, err := marshalModelIndent(out)
	if err != nil {
		return 0, err
	}
	return writeFile(w.fs, path.Join(w.root, req.Path), append(data, '\n'))
}
