// Package scanner walks an input resource pack and classifies its files
// into item, model and texture buckets.
package scanner

import (
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// Scanner builds a PackStructure from an input directory.
type Scanner struct {
	fs afero.Fs
	l  *zap.Logger
}

// New creates a scanner over the given filesystem.
func New(fs afero.Fs, l *zap.Logger) *Scanner {
	if l == nil {
		l = zap.NewNop()
	}
	return &Scanner{fs: fs, l: l}
}

// Scan recursively classifies every file under root. Recursion is
// synchronous depth-first; a missing subdirectory yields an empty
// contribution, not an error.
func (s *Scanner) Scan(root string) (*model.PackStructure, error) {
	structure := model.NewPackStructure()

	exists, err := afero.DirExists(s.fs, root)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.l.Warn("input directory missing, yielding empty structure", zap.String("root", root))
		return structure, nil
	}

	err = afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch {
		case model.IsItemPath(path):
			structure.AddItem(path)
		case model.IsModelPath(path):
			structure.AddModel(path)
		case model.IsTexturePath(path):
			structure.AddTexture(path)
		default:
			s.l.Debug("unclassified file skipped", zap.String("path", path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.l.Debug("pack structure built",
		zap.Int("items", len(structure.ItemFiles)),
		zap.Int("models", len(structure.ModelFiles)),
		zap.Int("textures", len(structure.TextureFiles)),
	)
	return structure, nil
}
