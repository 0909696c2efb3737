package handlers

import (
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// BaseHandler is the catch-all rule: it applies to every item and
// guarantees at least a passthrough model, so an item whose tree matched
// no specific rule still renders. Its contribution sits at priority 0
// and loses any conflict against a more specific rule.
type BaseHandler struct {
	l *zap.Logger
}

// Name implements Handler.
func (h *BaseHandler) Name() string { return "base" }

// AppliesTo implements Handler.
func (h *BaseHandler) AppliesTo(item *Item) bool { return true }

// Handle implements Handler.
func (h *BaseHandler) Handle(item *Item) ([]model.WriteRequest, error) {
	target := "item/" + item.ID
	if leaf, ok := item.Root.(model.LeafNode); ok && leaf.Model != "" {
		target = model.StripNamespace(leaf.Model)
	}
	return []model.WriteRequest{{
		Type: model.TypeVanillaModel,
		Path: model.ItemModelPath(item.ID, ""),
		Content: map[string]interface{}{
			"textures": map[string]string{"layer0": target},
		},
		Priority: 0,
	}}, nil
}
