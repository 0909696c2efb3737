package extract

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pommel predicate keys understood by the target renderer.
const (
	PredicateHeld    = "pommel:is_held"
	PredicateOffhand = "pommel:is_offhand"
	PredicateGround  = "pommel:is_ground"
)

// noLevelSuffix holds enchantments that never carry a level suffix in
// rule names (single-level enchantments).
var noLevelSuffix = map[string]bool{
	"aqua_affinity": true,
	"channeling":    true,
	"flame":         true,
	"infinity":      true,
	"mending":       true,
	"multishot":     true,
	"silk_touch":    true,
}

// curseNames maps modern curse ids to the legacy display names the
// metadata-matching format expects.
var curseNames = map[string]string{
	"binding_curse":   "curse_of_binding",
	"vanishing_curse": "curse_of_vanishing",
}

// EnchantmentRuleName derives the rule (and file) name for one
// enchantment condition: legacy curse names, and a level suffix unless
// the enchantment is single-level or the level is 1.
func EnchantmentRuleName(ench *model.Enchantment) string {
	name := model.StripNamespace(ench.ID)
	if legacy, ok := curseNames[name]; ok {
		name = legacy
	}
	if ench.Level != 1 && !noLevelSuffix[model.StripNamespace(ench.ID)] {
		name += "_" + strconv.Itoa(ench.Level)
	}
	return name
}

// CITContent builds the content of a metadata-matching properties file
// for one enchantment rule.
func CITContent(itemID string, ench *model.Enchantment, modelRef string) map[string]interface{} {
	content := map[string]interface{}{
		"type":           "item",
		"items":          itemID,
		"model":          modelRef,
		"enchantmentIDs": ench.ID,
	}
	if ench.Level > 0 {
		content["enchantmentLevels"] = strconv.Itoa(ench.Level)
	}
	return content
}

// ContextTargets resolves one rule's paths into the three slots the
// output format distinguishes: main-hand, off-hand and base display.
type ContextTargets struct {
	Held    string
	Offhand string
	Base    string
}

// ClassifyPaths fills the three slots from a list of execution paths.
// Explicit (non-fallback) contributions win; fallback-derived paths only
// fill slots still empty. Within a class, first seen wins (stable).
func ClassifyPaths(paths []model.ExecutionPath) ContextTargets {
	var explicit, fallback ContextTargets
	for _, p := range paths {
		slots := &explicit
		if p.IsFallback {
			slots = &fallback
		}
		if len(p.Contexts) == 0 {
			// Unrestricted path: base display.
			fillSlot(&slots.Base, p.TargetModel)
			continue
		}
		for _, ctx := range p.Contexts {
			switch {
			case model.IsHeldContext(ctx):
				fillSlot(&slots.Held, p.TargetModel)
			case model.IsOffhandContext(ctx):
				fillSlot(&slots.Offhand, p.TargetModel)
			default:
				fillSlot(&slots.Base, p.TargetModel)
			}
		}
	}
	fillSlot(&explicit.Held, fallback.Held)
	fillSlot(&explicit.Offhand, fallback.Offhand)
	fillSlot(&explicit.Base, fallback.Base)
	return explicit
}

func fillSlot(slot *string, target string) {
	if *slot == "" {
		*slot = target
	}
}

// PredicateForContexts projects a context group onto the predicate the
// target renderer can evaluate. A main-hand context dominates, then
// off-hand, then ground; base display contexts (gui, fixed, head) and
// unrestricted groups map to the empty catch-all predicate.
func PredicateForContexts(ctxs []string) map[string]float64 {
	var offhand, ground bool
	for _, ctx := range ctxs {
		switch {
		case model.IsHeldContext(ctx):
			return map[string]float64{PredicateHeld: 1}
		case model.IsOffhandContext(ctx):
			offhand = true
		case ctx == "ground":
			ground = true
		}
	}
	if offhand {
		return map[string]float64{PredicateOffhand: 1}
	}
	if ground {
		return map[string]float64{PredicateGround: 1}
	}
	return map[string]float64{}
}

// OverridesForPaths expands execution paths into predicate overrides,
// one per context group, in contribution order. Identical predicate
// collisions resolve by strictly-greater priority; equal priority keeps
// the first seen (stable).
func OverridesForPaths(paths []model.ExecutionPath) []model.Override {
	type slot struct {
		index    int
		priority int
	}
	seen := map[string]slot{}
	var overrides []model.Override
	for _, p := range paths {
		override := model.Override{
			Predicate: PredicateForContexts(p.Contexts),
			Model:     p.TargetModel,
		}
		key, err := json.Marshal(override.Predicate)
		if err != nil {
			continue
		}
		existing, collision := seen[string(key)]
		if !collision {
			seen[string(key)] = slot{index: len(overrides), priority: p.Priority}
			overrides = append(overrides, override)
			continue
		}
		if p.Priority > existing.priority {
			overrides[existing.index] = override
			seen[string(key)] = slot{index: existing.index, priority: p.Priority}
		}
	}
	return overrides
}

// BaseTexture resolves the 2-D texture reference used as the generated
// model's layer0 from the base display target.
func (t ContextTargets) BaseTexture(itemID string) string {
	if t.Base != "" {
		return t.Base
	}
	return "item/" + itemID
}
