package writers

import (
	"path"

	"github.com/spf13/afero"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// CopyWriter copies assets verbatim from the input filesystem. A request
// without a sourcePath field is a hard, request-scoped error.
type CopyWriter struct {
	src  afero.Fs
	dst  afero.Fs
	root string
}

// Type implements Writer.
func (w *CopyWriter) Type() model.RequestType { return model.TypeTextureCopy }

// Write implements Writer.
func (w *CopyWriter) Write(req model.WriteRequest) (int64, error) {
	source := contentString(req.Content, "sourcePath")
	if source == "" {
		return 0, ErrMissingSourcePath.WrapMsg(nil, "request for %s", req.Path)
	}
	data, err := afero.ReadFile(w.src, source)
	if err != nil {
		return 0, err
	}
	return writeFile(w.dst, path.Join(w.root, req.Path), data)
}
