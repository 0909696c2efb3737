package handlers

import (
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/extract"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

const enchantmentPriority = 10

// EnchantmentHandler emits, per stored-enchantment condition, one
// metadata-matching properties file plus one override model carrying the
// held/off-hand predicate split.
type EnchantmentHandler struct {
	l *zap.Logger
}

// Name implements Handler.
func (h *EnchantmentHandler) Name() string { return "enchantment" }

// AppliesTo implements Handler.
func (h *EnchantmentHandler) AppliesTo(item *Item) bool {
	return item.Analysis.UsesComponent(extract.StoredEnchantments)
}

// Handle implements Handler.
func (h *EnchantmentHandler) Handle(item *Item) ([]model.WriteRequest, error) {
	paths := extract.Paths(item.Analysis)

	// One rule per distinct enchantment condition, first-seen order.
	var ruleOrder []string
	ruleEnch := map[string]*model.Enchantment{}
	rulePaths := map[string][]model.ExecutionPath{}
	for _, p := range paths {
		if p.Enchantment == nil {
			continue
		}
		rule := extract.EnchantmentRuleName(p.Enchantment)
		if _, seen := ruleEnch[rule]; !seen {
			ruleOrder = append(ruleOrder, rule)
			ruleEnch[rule] = p.Enchantment
		}
		rulePaths[rule] = append(rulePaths[rule], p)
	}

	// Context-only paths supply the base (closed) variant when a rule's
	// own paths leave slots empty.
	var pure []model.ExecutionPath
	for _, p := range paths {
		if p.Enchantment == nil && p.Component == "" {
			pure = append(pure, p)
		}
	}
	pureTargets := extract.ClassifyPaths(pure)

	l := loggerOrNop(h.l)
	var requests []model.WriteRequest
	for _, rule := range ruleOrder {
		ench := ruleEnch[rule]
		targets := extract.ClassifyPaths(rulePaths[rule])
		if targets.Base == "" {
			targets.Base = pureTargets.Base
		}
		if targets.Offhand == "" {
			targets.Offhand = pureTargets.Offhand
		}

		// Rules usually cover only held contexts. The override chain
		// still needs a non-held entry resolving to the closed variant.
		nonHeld := targets.Offhand
		if nonHeld == "" {
			nonHeld = targets.Base
		}
		overrides := extract.OverridesForPaths(rulePaths[rule])
		if nonHeld != "" && !hasPredicate(overrides, extract.PredicateOffhand) {
			overrides = append(overrides, model.Override{
				Predicate: map[string]float64{extract.PredicateOffhand: 1},
				Model:     nonHeld,
			})
		}

		modelRef := model.ItemModelRef(item.ID, rule)
		requests = append(requests, model.WriteRequest{
			Type:     model.TypeCITProperties,
			Path:     model.CITPropertiesPath(item.ID, rule),
			Content:  extract.CITContent(item.ID, ench, modelRef),
			Priority: enchantmentPriority,
		})
		requests = append(requests, model.WriteRequest{
			Type: model.TypePommelModel,
			Path: model.ItemModelPath(item.ID, rule),
			Content: map[string]interface{}{
				"textures":  map[string]string{"layer0": targets.BaseTexture(item.ID)},
				"overrides": overrides,
			},
			Merge:    true,
			Priority: enchantmentPriority,
		})
		l.Debug("enchantment rule emitted",
			zap.String("item", item.ID),
			zap.String("rule", rule),
			zap.String("enchantment", ench.ID),
			zap.Int("level", ench.Level),
		)
	}
	return requests, nil
}
