// Package compat is the final sweep over every written model file:
// it repairs degenerate geometry and invalid inheritance references,
// with a protected carve-out for hand-authored template assets.
package compat

import (
	"bytes"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/errors"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrTemplateInvalid marks a template file that failed structural
// validation. Its repair pass is abandoned; the file stays as written.
var ErrTemplateInvalid = errors.New("template failed structural validation")

// repairEpsilon is added to a degenerate axis so the element regains
// thickness without visibly changing the geometry.
const repairEpsilon = 0.01

// invalidParents maps known-invalid legacy parent references to
// supported replacements.
var invalidParents = map[string]string{
	"builtin/entity":           "item/generated",
	"minecraft:builtin/entity": "item/generated",
}

// templateRequiredFields are the structural fields a hand-authored
// template export must carry to be considered intact.
var templateRequiredFields = []string{"credit", "texture_size", "elements", "display"}

// Report summarizes one postprocessing sweep.
type Report struct {
	Scanned          int
	Repaired         int
	TemplatesFixed   int
	TemplatesInvalid int
}

// Postprocessor repairs written model files in place.
type Postprocessor struct {
	fs afero.Fs
	l  *zap.Logger
}

// New creates a postprocessor over the output filesystem.
func New(fs afero.Fs, l *zap.Logger) *Postprocessor {
	if l == nil {
		l = zap.NewNop()
	}
	return &Postprocessor{fs: fs, l: l}
}

// Process sweeps every model file below root. Template validation
// failures abandon that single file and the sweep continues; filesystem
// failures abort.
func (p *Postprocessor) Process(root string) (*Report, error) {
	report := &Report{}
	exists, err := afero.DirExists(p.fs, root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return report, nil
	}

	err = afero.Walk(p.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isModelFile(path) {
			return nil
		}
		report.Scanned++
		if model.IsTemplatePath(path) {
			if terr := p.processTemplate(path, report); terr != nil {
				if errors.Is(terr, ErrTemplateInvalid) {
					// Left byte-for-byte untouched; other generated
					// models reference it by path, not inheritance.
					p.l.Warn("template left untouched", zap.String("path", path), zap.Error(terr))
					report.TemplatesInvalid++
					return nil
				}
				return terr
			}
			return nil
		}
		return p.processModel(path, report)
	})
	if err != nil {
		return nil, err
	}

	p.l.Debug("compatibility sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("repaired", report.Repaired),
		zap.Int("templates_fixed", report.TemplatesFixed),
		zap.Int("templates_invalid", report.TemplatesInvalid),
	)
	return report, nil
}

func isModelFile(path string) bool {
	return strings.Contains(strings.ReplaceAll(path, "\\", "/"), "/models/") &&
		strings.HasSuffix(path, ".json")
}

// processModel applies geometry and inheritance repair to one generated
// model, rewriting the file only when something changed.
func (p *Postprocessor) processModel(path string, report *Report) error {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return err
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		p.l.Warn("model not parseable, skipping repair", zap.String("path", path), zap.Error(err))
		return nil
	}

	changed := false
	if parent, ok := doc["parent"].(string); ok {
		if replacement, invalid := invalidParents[parent]; invalid {
			doc["parent"] = replacement
			changed = true
		}
	}
	if repairElements(doc) {
		changed = true
	}
	if !changed {
		return nil
	}

	report.Repaired++
	p.l.Debug("model repaired", zap.String("path", path))
	return p.rewrite(path, doc, data)
}

// repairElements increments the to-coordinate of any axis where a
// cuboid has zero thickness.
func repairElements(doc map[string]interface{}) bool {
	elements, ok := doc["elements"].([]interface{})
	if !ok {
		return false
	}
	changed := false
	for _, raw := range elements {
		element, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		from, okFrom := element["from"].([]interface{})
		to, okTo := element["to"].([]interface{})
		if !okFrom || !okTo || len(from) != 3 || len(to) != 3 {
			continue
		}
		for axis := 0; axis < 3; axis++ {
			f, okF := from[axis].(float64)
			t, okT := to[axis].(float64)
			if okF && okT && f == t {
				to[axis] = t + repairEpsilon
				changed = true
			}
		}
	}
	return changed
}

// processTemplate validates a protected template and strips any parent
// key. Inheritance repair never applies here: an invalid template is
// left exactly as written, no partial fixes.
func (p *Postprocessor) processTemplate(path string, report *Report) error {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return err
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ErrTemplateInvalid.Wrap(err)
	}
	for _, field := range templateRequiredFields {
		if _, ok := doc[field]; !ok {
			return ErrTemplateInvalid.WrapMsg(nil, "missing field %q in %s", field, path)
		}
	}
	if _, ok := doc["parent"]; !ok {
		return nil
	}
	delete(doc, "parent")
	report.TemplatesFixed++
	p.l.Debug("template parent stripped", zap.String("path", path))
	return p.rewrite(path, doc, data)
}

// rewrite serializes the repaired document back, preserving the file
// when serialization would produce identical bytes.
func (p *Postprocessor) rewrite(path string, doc map[string]interface{}, previous []byte) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if bytes.Equal(data, previous) {
		return nil
	}
	return afero.WriteFile(p.fs, path, data, 0644)
}
