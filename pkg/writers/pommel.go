package writers

import (
	"path"

	"github.com/spf13/afero"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// DefaultHandheldParent is the generic handheld parent override models
// inherit from when the request does not name one.
const DefaultHandheldParent = "item/handheld"

// PommelWriter serializes override models. The three keys parent,
// textures and overrides are always present, never omitted, so the
// downstream renderer sees a complete model even when a section is
// empty.
type PommelWriter struct {
	fs   afero.Fs
	root string
}

type pommelModel struct {
	Parent    string            `json:"parent"`
	Textures  map[string]string `json:"textures"`
	Overrides []model.Override  `json:"overrides"`
}

// Type implements Writer.
func (w *PommelWriter) Type() model.RequestType { return model.TypePommelModel }

// Write implements Writer.
func (w *PommelWriter) Write(req model.WriteRequest) (int64, error) {
	out := pommelModel{
		Parent:    contentString(req.Content, "parent"),
		Textures:  contentTextures(req.Content),
		Overrides: contentOverrides(req.Content),
	}
	if out.Parent == "" {
		out.Parent = DefaultHandheldParent
	}
	if out.Overrides == nil {
		out.Overrides = []model.Override{}
	}
	data, err := marshalModelIndent(out)
	if err != nil {
		return 0, err
	}
	return writeFile(w.fs, path.Join(w.root, req.Path), append(data, '\n'))
}
