// Package writers serializes resolved write requests to their on-disk
// formats: override models, metadata-matching properties, plain models
// and verbatim asset copies.
package writers

import (
	"path"
	"regexp"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/errors"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnknownRequestType signals a request no writer is registered for.
// The caller logs it and skips the request; the run continues.
var ErrUnknownRequestType = errors.New("unknown write request type")

// ErrMissingSourcePath is the request-scoped hard error for an asset
// copy request without a sourcePath field.
var ErrMissingSourcePath = errors.New("asset copy request missing sourcePath")

// Writer serializes one artifact type.
type Writer interface {
	Type() model.RequestType
	Write(req model.WriteRequest) (int64, error)
}

// Registry dispatches requests to the writer registered for their type.
// Constructed once at pipeline start; no hidden global state.
type Registry struct {
	writers map[model.RequestType]Writer
	l       *zap.Logger
}

// NewRegistry creates a registry with the four default writers. srcFs is
// the filesystem asset copies read from; dstFs receives every artifact
// below outRoot.
func NewRegistry(srcFs, dstFs afero.Fs, outRoot string, l *zap.Logger) *Registry {
	if l == nil {
		l = zap.NewNop()
	}
	r := &Registry{writers: map[model.RequestType]Writer{}, l: l}
	r.Register(
		&PommelWriter{fs: dstFs, root: outRoot},
		&CITWriter{fs: dstFs, root: outRoot},
		&VanillaWriter{fs: dstFs, root: outRoot},
		&CopyWriter{src: srcFs, dst: dstFs, root: outRoot},
	)
	return r
}

// Register adds writers, one per artifact type.
func (r *Registry) Register(ws ...Writer) {
	for _, w := range ws {
		r.writers[w.Type()] = w
	}
}

// Write serializes one request, returning the number of bytes written.
func (r *Registry) Write(req model.WriteRequest) (int64, error) {
	w, ok := r.writers[req.Type]
	if !ok {
		return 0, ErrUnknownRequestType.WrapMsg(nil, "type %q for %s", req.Type, req.Path)
	}
	return w.Write(req)
}

// jsoniter's indenting encoder pads empty objects with whitespace-only
// lines; collapse them so empty sections render as {}.
var emptyObject = regexp.MustCompile(`\{\n[ ]*\n[ ]*\}`)

// marshalModelIndent renders a model document with normalized empty
// sections.
func marshalModelIndent(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return emptyObject.ReplaceAll(data, []byte("{}")), nil
}

// writeFile ensures parent directories and writes data.
func writeFile(fs afero.Fs, name string, data []byte) (int64, error) {
	if dir := path.Dir(name); dir != "" && dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return 0, err
		}
	}
	if err := afero.WriteFile(fs, name, data, 0644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// contentString extracts an optional string field from request content.
func contentString(content map[string]interface{}, key string) string {
	if v, ok := content[key].(string); ok {
		return v
	}
	return ""
}

// contentTextures extracts the texture map, tolerating both the
// in-memory and the decoded-JSON shape.
func contentTextures(content map[string]interface{}) map[string]string {
	textures := map[string]string{}
	switch v := content["textures"].(type) {
	case map[string]string:
		for k, t := range v {
			textures[k] = t
		}
	case map[string]interface{}:
		for k, t := range v {
			if s, ok := t.(string); ok {
				textures[k] = s
			}
		}
	}
	return textures
}

// contentOverrides extracts the override list, tolerating both the
// in-memory and the decoded-JSON shape.
func contentOverrides(content map[string]interface{}) []model.Override {
	switch v := content["overrides"].(type) {
	case []model.Override:
		return v
	case []interface{}:
		overrides := make([]model.Override, 0, len(v))
		for _, raw := range v {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			o := model.Override{Predicate: map[string]float64{}}
			o.Model, _ = m["model"].(string)
			if pred, ok := m["predicate"].(map[string]interface{}); ok {
				for k, val := range pred {
					if f, ok := val.(float64); ok {
						o.Predicate[k] = f
					}
				}
			}
			overrides = append(overrides, o)
		}
		return overrides
	}
	return nil
}
