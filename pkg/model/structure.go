package model

import "path"

// PackStructure lists the classified files of an input resource pack.
// Built once per run by the scanner; read-only afterward.
type PackStructure struct {
	ItemFiles    []string
	ModelFiles   []string
	TextureFiles []string

	// ModelDirs and TextureDirs group files under their containing
	// directory key.
	ModelDirs   map[string][]string
	TextureDirs map[string][]string
}

// NewPackStructure returns an empty structure with initialized groups.
func NewPackStructure() *PackStructure {
	return &PackStructure{
		ModelDirs:   map[string][]string{},
		TextureDirs: map[string][]string{},
	}
}

// AddItem records an item descriptor file.
func (s *PackStructure) AddItem(p string) {
	s.ItemFiles = append(s.ItemFiles, p)
}

// AddModel records a model file under its directory key.
func (s *PackStructure) AddModel(p string) {
	s.ModelFiles = append(s.ModelFiles, p)
	dir := path.Dir(filepathToSlash(p))
	s.ModelDirs[dir] = append(s.ModelDirs[dir], p)
}

// AddTexture records a texture file under its directory key.
func (s *PackStructure) AddTexture(p string) {
	s.TextureFiles = append(s.TextureFiles, p)
	dir := path.Dir(filepathToSlash(p))
	s.TextureDirs[dir] = append(s.TextureDirs[dir], p)
}
