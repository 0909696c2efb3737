// Package extract re-expresses a component analysis as independent
// execution paths, each bound to one target model and a specificity
// priority, and maps those paths onto concrete output artifacts.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// StoredEnchantments is the component id carrying per-instance
// enchantment metadata.
const StoredEnchantments = "minecraft:stored_enchantments"

// Paths materializes every reachable branch of the analyzed tree as an
// ordered list of execution paths. Contribution order is stable and
// semantically load-bearing downstream.
func Paths(a *model.ComponentAnalysis) []model.ExecutionPath {
	var paths []model.ExecutionPath
	for _, cm := range a.ConditionalModels {
		for _, group := range groupByTarget(cm.ContextMappings) {
			p := model.ExecutionPath{
				Contexts:    group.contexts,
				TargetModel: group.target,
				IsFallback:  cm.Fallback,
			}
			if cm.Component == model.PureDisplayContext {
				p.Priority = model.PriorityContextOnly
			} else {
				p.Component = cm.Component
				if cm.Component == StoredEnchantments && len(cm.Conditions) > 0 {
					p.Enchantment = parseEnchantmentCondition(cm.Conditions[0])
				}
				if len(group.contexts) > 0 {
					p.Priority = model.PriorityComponentContext
				} else {
					p.Priority = model.PriorityComponent
				}
			}
			paths = append(paths, p)
		}
	}
	return paths
}

type targetGroup struct {
	target   string
	contexts []string
}

// groupByTarget collapses a context-to-model mapping into one group per
// distinct target model, preserving first-seen target order. The
// empty-string context (unrestricted) yields a group with no contexts.
func groupByTarget(mappings map[string]string) []targetGroup {
	index := map[string]int{}
	var groups []targetGroup
	for _, ctx := range orderedContexts(mappings) {
		target := mappings[ctx]
		i, ok := index[target]
		if !ok {
			i = len(groups)
			index[target] = i
			groups = append(groups, targetGroup{target: target})
		}
		if ctx != "" {
			groups[i].contexts = append(groups[i].contexts, ctx)
		}
	}
	return groups
}

// orderedContexts iterates mapping keys in canonical-context order so
// extraction is deterministic; unknown contexts follow, sorted.
func orderedContexts(mappings map[string]string) []string {
	var ordered []string
	if _, ok := mappings[""]; ok {
		ordered = append(ordered, "")
	}
	for _, ctx := range model.CanonicalContexts {
		if _, ok := mappings[ctx]; ok {
			ordered = append(ordered, ctx)
		}
	}
	var rest []string
	for ctx := range mappings {
		if ctx == "" || isCanonical(ctx) {
			continue
		}
		rest = append(rest, ctx)
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func isCanonical(ctx string) bool {
	for _, c := range model.CanonicalContexts {
		if c == ctx {
			return true
		}
	}
	return false
}

func parseEnchantmentCondition(cond string) *model.Enchantment {
	parts := strings.SplitN(cond, "=", 2)
	ench := &model.Enchantment{ID: parts[0], Level: 1}
	if len(parts) == 2 {
		if level, err := strconv.Atoi(parts[1]); err == nil {
			ench.Level = level
		}
	}
	return ench
}
