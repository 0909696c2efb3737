// Package analyzer parses one item's selector tree into a normalized
// component analysis: components used, contexts seen, and flattened
// context-to-model mappings.
package analyzer

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// Analyzer turns selector trees into ComponentAnalysis values.
type Analyzer struct {
	l *zap.Logger
}

// New creates an analyzer.
func New(l *zap.Logger) *Analyzer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Analyzer{l: l}
}

// Analyze traverses the item's tree depth-first, carrying the active
// display-context list as state. The result is never mutated afterward.
func (a *Analyzer) Analyze(itemID string, root model.Node) (*model.ComponentAnalysis, error) {
	if root == nil {
		return nil, fmt.Errorf("item %q has no model tree", itemID)
	}
	w := &walker{
		analysis: &model.ComponentAnalysis{
			ItemID:         itemID,
			ComponentsUsed: map[string]bool{},
		},
		seenContexts: map[string]bool{},
	}
	w.walk(root, nil)
	a.l.Debug("item analyzed",
		zap.String("item", itemID),
		zap.Int("fragments", len(w.analysis.ConditionalModels)),
		zap.Strings("contexts", w.analysis.DisplayContexts),
	)
	return w.analysis, nil
}

type walker struct {
	analysis     *model.ComponentAnalysis
	seenContexts map[string]bool
}

// noteContexts appends newly seen contexts to the ordered global list.
// Duplicates are dropped, first-seen order preserved.
func (w *walker) noteContexts(ctxs []string) {
	for _, ctx := range ctxs {
		if !w.seenContexts[ctx] {
			w.seenContexts[ctx] = true
			w.analysis.DisplayContexts = append(w.analysis.DisplayContexts, ctx)
		}
	}
}

func (w *walker) record(component string, conditions []string, ctxs []string, target string, fallback bool) {
	mappings := map[string]string{}
	if len(ctxs) == 0 {
		// Unrestricted fragment; see ConditionalModel.ContextMappings.
		mappings[""] = target
	}
	for _, ctx := range ctxs {
		mappings[ctx] = target
	}
	w.analysis.ConditionalModels = append(w.analysis.ConditionalModels, model.ConditionalModel{
		Component:       component,
		Conditions:      conditions,
		ContextMappings: mappings,
		Fallback:        fallback,
	})
}

func (w *walker) walk(n model.Node, active []string) {
	switch node := n.(type) {
	case model.LeafNode:
		w.record(model.PureDisplayContext, nil, active, node.Model, false)

	case model.ContextSelectNode:
		claimed := map[string]bool{}
		for _, c := range node.Cases {
			w.noteContexts(c.When)
			for _, ctx := range c.When {
				claimed[ctx] = true
			}
			if leaf, ok := c.Model.(model.LeafNode); ok {
				w.record(model.PureDisplayContext, nil, c.When, leaf.Model, false)
			} else {
				w.walk(c.Model, c.When)
			}
		}
		if node.Fallback != nil {
			var unclaimed []string
			for _, ctx := range model.CanonicalContexts {
				if !claimed[ctx] {
					unclaimed = append(unclaimed, ctx)
				}
			}
			w.noteContexts(unclaimed)
			if leaf, ok := node.Fallback.(model.LeafNode); ok {
				w.record(model.PureDisplayContext, nil, unclaimed, leaf.Model, true)
			} else {
				w.walk(node.Fallback, unclaimed)
			}
		}

	case model.ComponentSelectNode:
		w.analysis.ComponentsUsed[node.Component] = true
		for _, c := range node.Cases {
			for _, id := range sortedKeys(c.When) {
				cond := fmt.Sprintf("%s=%d", id, c.When[id])
				w.walkComponentCase(node.Component, cond, c.Model, active)
			}
		}

	case model.ConditionNode:
		w.analysis.ComponentsUsed[node.Predicate] = true
		// The boolean predicate itself is not encoded into recorded
		// entries; two branches differing only by it are distinguishable
		// by traversal order alone. Known source limitation.
		if node.OnTrue != nil {
			w.walk(node.OnTrue, active)
		}
		if node.OnFalse != nil {
			w.walk(node.OnFalse, active)
		}
	}
}

// walkComponentCase records the nested model of one component case,
// carrying the currently active context list forward unchanged. A nested
// context select narrows the mapping per its own cases.
func (w *walker) walkComponentCase(component, cond string, n model.Node, active []string) {
	switch node := n.(type) {
	case model.LeafNode:
		w.record(component, []string{cond}, active, node.Model, false)

	case model.ContextSelectNode:
		claimed := map[string]bool{}
		for _, c := range node.Cases {
			w.noteContexts(c.When)
			for _, ctx := range c.When {
				claimed[ctx] = true
			}
			w.walkComponentCase(component, cond, c.Model, c.When)
		}
		if node.Fallback != nil {
			var unclaimed []string
			for _, ctx := range model.CanonicalContexts {
				if !claimed[ctx] {
					unclaimed = append(unclaimed, ctx)
				}
			}
			w.noteContexts(unclaimed)
			w.walkComponentCase(component, cond, node.Fallback, unclaimed)
		}

	default:
		w.walk(n, active)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
