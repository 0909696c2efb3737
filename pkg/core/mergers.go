package core

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Merger resolves a same-key conflict group into one request.
type Merger interface {
	Name() string
	Accepts(group []model.WriteRequest) bool
	Merge(group []model.WriteRequest) (model.WriteRequest, error)
}

// OverrideMerger merges same-path override-model groups: only the
// highest-priority contributions survive, their override lists are
// concatenated in contribution order and deduplicated by serialized
// (predicate, model) pair, first occurrence kept. No further reordering
// happens: the override list is a first-match-wins predicate chain for
// the downstream renderer, so registration order is load-bearing.
type OverrideMerger struct{}

// NewOverrideMerger creates the one required merger.
func NewOverrideMerger() *OverrideMerger { return &OverrideMerger{} }

// Name implements Merger.
func (m *OverrideMerger) Name() string { return "override-model" }

// Accepts implements Merger.
func (m *OverrideMerger) Accepts(group []model.WriteRequest) bool {
	if len(group) < 2 {
		return false
	}
	for _, req := range group {
		if req.Type != model.TypePommelModel || !req.Merge {
			return false
		}
	}
	return true
}

// Merge implements Merger.
func (m *OverrideMerger) Merge(group []model.WriteRequest) (model.WriteRequest, error) {
	maxPriority := group[0].Priority
	for _, req := range group[1:] {
		if req.Priority > maxPriority {
			maxPriority = req.Priority
		}
	}

	var kept []model.WriteRequest
	for _, req := range group {
		if req.Priority == maxPriority {
			kept = append(kept, req)
		}
	}

	merged := model.WriteRequest{
		Type:     model.TypePommelModel,
		Path:     group[0].Path,
		Merge:    true,
		Priority: maxPriority,
		Content:  map[string]interface{}{},
	}

	textures := map[string]string{}
	var overrides []model.Override
	seen := map[string]bool{}
	for _, req := range kept {
		if parent, ok := req.Content["parent"].(string); ok && parent != "" {
			if _, set := merged.Content["parent"]; !set {
				merged.Content["parent"] = parent
			}
		}
		for k, v := range texturesOf(req) {
			if _, set := textures[k]; !set {
				textures[k] = v
			}
		}
		for _, o := range overridesOf(req) {
			key, err := json.Marshal(o)
			if err != nil {
				return model.WriteRequest{}, err
			}
			if seen[string(key)] {
				continue
			}
			seen[string(key)] = true
			overrides = append(overrides, o)
		}
	}
	if len(textures) > 0 {
		merged.Content["textures"] = textures
	}
	merged.Content["overrides"] = overrides
	return merged, nil
}

func texturesOf(req model.WriteRequest) map[string]string {
	switch v := req.Content["textures"].(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := map[string]string{}
		for k, t := range v {
			if s, ok := t.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}

func overridesOf(req model.WriteRequest) []model.Override {
	if v, ok := req.Content["overrides"].([]model.Override); ok {
		return v
	}
	return nil
}
