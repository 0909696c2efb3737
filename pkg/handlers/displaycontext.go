package handlers

import (
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/extract"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

const displayContextPriority = 5

// DisplayContextHandler emits an override model for items whose tree
// selects purely by render context.
type DisplayContextHandler struct {
	l *zap.Logger
}

// Name implements Handler.
func (h *DisplayContextHandler) Name() string { return "display-context" }

// AppliesTo implements Handler.
func (h *DisplayContextHandler) AppliesTo(item *Item) bool {
	if len(item.Analysis.DisplayContexts) == 0 {
		return false
	}
	for _, cm := range item.Analysis.ConditionalModels {
		if cm.Component != model.PureDisplayContext {
			continue
		}
		for ctx := range cm.ContextMappings {
			if ctx != "" {
				return true
			}
		}
	}
	return false
}

// Handle implements Handler.
func (h *DisplayContextHandler) Handle(item *Item) ([]model.WriteRequest, error) {
	paths := extract.Paths(item.Analysis)
	var pure []model.ExecutionPath
	for _, p := range paths {
		if p.Enchantment == nil && p.Component == "" && len(p.Contexts) > 0 {
			pure = append(pure, p)
		}
	}
	targets := extract.ClassifyPaths(pure)

	loggerOrNop(h.l).Debug("display context model emitted",
		zap.String("item", item.ID),
		zap.String("held", targets.Held),
		zap.String("offhand", targets.Offhand),
		zap.String("base", targets.Base),
	)
	return []model.WriteRequest{{
		Type: model.TypePommelModel,
		Path: model.ItemModelPath(item.ID, ""),
		Content: map[string]interface{}{
			"textures":  map[string]string{"layer0": targets.BaseTexture(item.ID)},
			"overrides": extract.OverridesForPaths(pure),
		},
		Merge:    true,
		Priority: displayContextPriority,
	}}, nil
}
