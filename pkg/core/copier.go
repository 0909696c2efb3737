package core

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

const (
	packMetadataFile = "pack.mcmeta"
	packImageFile    = "pack.png"
)

// copyPackMetadata duplicates the pack descriptor and image verbatim.
// A missing descriptor is a warning, not an error: the rest of the pack
// still converts.
func (b *Backporter) copyPackMetadata(l *zap.Logger) (int64, error) {
	var written int64
	for _, name := range []string{packMetadataFile, packImageFile} {
		src := path.Join(b.inputDir, name)
		data, err := afero.ReadFile(b.srcFs, src)
		if err != nil {
			if os.IsNotExist(err) {
				if name == packMetadataFile {
					l.Warn("pack metadata file missing", zap.String("path", src))
				}
				continue
			}
			return written, err
		}
		dst := path.Join(b.outputDir, name)
		if err := afero.WriteFile(b.dstFs, dst, data, 0644); err != nil {
			return written, err
		}
		written += int64(len(data))
	}
	return written, nil
}

// assetCopyRequests turns every scanned model and texture file into a
// verbatim copy request through the write pipeline. Copies carry
// priority 0 and are buffered after item contributions, so a generated
// artifact at the same output path keeps ownership.
func (b *Backporter) assetCopyRequests(structure *model.PackStructure) []model.WriteRequest {
	var requests []model.WriteRequest
	files := make([]string, 0, len(structure.ModelFiles)+len(structure.TextureFiles))
	files = append(files, structure.ModelFiles...)
	files = append(files, structure.TextureFiles...)
	for _, src := range files {
		rel := outputRelPath(src)
		if rel == "" {
			continue
		}
		requests = append(requests, model.WriteRequest{
			Type:    model.TypeTextureCopy,
			Path:    rel,
			Content: map[string]interface{}{"sourcePath": src},
		})
	}
	return requests
}

// outputRelPath maps an input file to its output-relative path by
// anchoring on the assets directory.
func outputRelPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if i := strings.Index(p, model.AssetsDir+"/"); i >= 0 {
		return p[i:]
	}
	return ""
}

// clearOutput removes every stale artifact from a previous run. It runs
// to completion before the first write, so a run that emits fewer files
// for some path never leaves a leftover behind.
func (b *Backporter) clearOutput(l *zap.Logger) error {
	exists, err := afero.DirExists(b.dstFs, b.outputDir)
	if err != nil {
		return err
	}
	if exists {
		l.Debug("clearing output directory", zap.String("dir", b.outputDir))
		if err := b.dstFs.RemoveAll(b.outputDir); err != nil {
			return err
		}
	}
	return b.dstFs.MkdirAll(b.outputDir, 0755)
}
