package handlers

import (
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/extract"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

const bookContentPriority = 8

// Boolean content components the book rule reacts to.
var bookContentComponents = []string{
	"minecraft:written_book_content",
	"minecraft:writable_book_content",
}

// BookContentHandler emits an override model for items whose tree
// branches on boolean book-content presence.
//
// The boolean predicate is not encoded into extracted entries, so the
// two branches are distinguishable by traversal order only: the on_true
// branch contributes first. Known source limitation.
type BookContentHandler struct {
	l *zap.Logger
}

// Name implements Handler.
func (h *BookContentHandler) Name() string { return "book-content" }

// AppliesTo implements Handler.
func (h *BookContentHandler) AppliesTo(item *Item) bool {
	for _, c := range bookContentComponents {
		if item.Analysis.UsesComponent(c) {
			return true
		}
	}
	return false
}

// Handle implements Handler.
func (h *BookContentHandler) Handle(item *Item) ([]model.WriteRequest, error) {
	paths := extract.Paths(item.Analysis)
	var pure []model.ExecutionPath
	for _, p := range paths {
		if p.Enchantment == nil && p.Component == "" {
			pure = append(pure, p)
		}
	}
	if len(pure) == 0 {
		loggerOrNop(h.l).Warn("book content rule found no extractable branch", zap.String("item", item.ID))
		return nil, nil
	}

	targets := extract.ClassifyPaths(pure)
	// When the branch split carried no context information at all, the
	// first branch in traversal order becomes the held variant and the
	// last the base one.
	held := targets.Held
	if held == "" {
		held = pure[0].TargetModel
	}
	base := targets.Base
	if base == "" || base == held {
		base = pure[len(pure)-1].TargetModel
	}
	overrides := []model.Override{
		{Predicate: map[string]float64{extract.PredicateHeld: 1}, Model: held},
		{Predicate: map[string]float64{extract.PredicateOffhand: 1}, Model: base},
	}

	return []model.WriteRequest{{
		Type: model.TypePommelModel,
		Path: model.ItemModelPath(item.ID, ""),
		Content: map[string]interface{}{
			"textures":  map[string]string{"layer0": base},
			"overrides": overrides,
		},
		Merge:    true,
		Priority: bookContentPriority,
	}}, nil
}
