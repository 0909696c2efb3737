// Package handlers implements the ordered extraction-rule pipeline.
// Every rule whose applicability test passes on an item runs and
// contributes write requests; this is not first-match dispatch.
package handlers

import (
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// Item bundles everything a handler may inspect about one item.
type Item struct {
	ID       string
	Path     string
	Root     model.Node
	Analysis *model.ComponentAnalysis
}

// Handler is one extraction rule.
type Handler interface {
	Name() string
	AppliesTo(item *Item) bool
	Handle(item *Item) ([]model.WriteRequest, error)
}

// Registry holds the ordered rule list for one pipeline instance. It is
// constructed once at pipeline start and threaded through calls; there
// is no package-level mutable registry.
type Registry struct {
	handlers []Handler
	l        *zap.Logger
}

// NewRegistry creates a registry with the default rules, most to least
// specific: enchantment, book content, display context, base
// passthrough.
func NewRegistry(l *zap.Logger) *Registry {
	if l == nil {
		l = zap.NewNop()
	}
	r := &Registry{l: l}
	r.Register(
		&EnchantmentHandler{l: l},
		&BookContentHandler{l: l},
		&DisplayContextHandler{l: l},
		&BaseHandler{l: l},
	)
	return r
}

// NewEmptyRegistry creates a registry with no rules registered.
func NewEmptyRegistry(l *zap.Logger) *Registry {
	if l == nil {
		l = zap.NewNop()
	}
	return &Registry{l: l}
}

// Register appends rules in order.
func (r *Registry) Register(hs ...Handler) {
	r.handlers = append(r.handlers, hs...)
}

// loggerOrNop guards handlers constructed as zero values.
func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// hasPredicate reports whether any override already carries the given
// predicate key.
func hasPredicate(overrides []model.Override, key string) bool {
	for _, o := range overrides {
		if _, ok := o.Predicate[key]; ok {
			return true
		}
	}
	return false
}

// Dispatch runs every applicable rule on the item and concatenates their
// contributions. Zero applicable rules is a reportable warning, not
// fatal: the item yields no artifacts and the run continues.
func (r *Registry) Dispatch(item *Item) ([]model.WriteRequest, error) {
	var requests []model.WriteRequest
	applied := 0
	for _, h := range r.handlers {
		if !h.AppliesTo(item) {
			continue
		}
		applied++
		contributed, err := h.Handle(item)
		if err != nil {
			return nil, err
		}
		r.l.Debug("handler contributed",
			zap.String("item", item.ID),
			zap.String("handler", h.Name()),
			zap.Int("requests", len(contributed)),
		)
		requests = append(requests, contributed...)
	}
	if applied == 0 {
		r.l.Warn("no extraction rule applies, item yields no artifacts", zap.String("item", item.ID))
	}
	return requests, nil
}
