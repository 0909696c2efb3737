package model

// PureDisplayContext tags conditional models that depend on render
// context alone, with no stored-component condition attached.
const PureDisplayContext = "pure_display_context"

// CanonicalContexts are the eight render contexts a fallback branch
// backfills when a case list leaves some of them unclaimed.
var CanonicalContexts = []string{
	"gui",
	"fixed",
	"ground",
	"firstperson_righthand",
	"thirdperson_righthand",
	"firstperson_lefthand",
	"thirdperson_lefthand",
	"head",
}

// HeldContexts are the main-hand render contexts.
var HeldContexts = []string{"firstperson_righthand", "thirdperson_righthand"}

// OffhandContexts are the off-hand render contexts.
var OffhandContexts = []string{"firstperson_lefthand", "thirdperson_lefthand"}

// IsHeldContext reports whether ctx is a main-hand context.
func IsHeldContext(ctx string) bool {
	for _, c := range HeldContexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// IsOffhandContext reports whether ctx is an off-hand context.
func IsOffhandContext(ctx string) bool {
	for _, c := range OffhandContexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// ConditionalModel is one flattened decision fragment extracted from an
// item's selector tree.
type ConditionalModel struct {
	// Component is the stored component the fragment is conditioned on,
	// or PureDisplayContext when only render context applies.
	Component string
	// Conditions holds "id=level" pairs for component-conditioned
	// fragments.
	Conditions []string
	// ContextMappings maps each active display context to the model the
	// fragment resolves to. The empty-string key means the fragment is
	// not restricted to any context.
	ContextMappings map[string]string
	// Fallback marks fragments derived from a fallback branch rather
	// than an explicit case.
	Fallback bool
}

// ComponentAnalysis is the normalized result of analyzing one item's
// selector tree. It is never mutated once analysis completes.
type ComponentAnalysis struct {
	ItemID string
	// ComponentsUsed is the set of component ids the tree selects or
	// conditions on.
	ComponentsUsed map[string]bool
	// DisplayContexts lists every context seen during traversal, in
	// first-seen order, deduplicated.
	DisplayContexts []string
	// ConditionalModels lists flattened decision fragments in traversal
	// order. Order is load-bearing: downstream predicate chains are
	// first-match-wins.
	ConditionalModels []ConditionalModel
}

// UsesComponent reports whether the analysis saw the given component id.
func (a *ComponentAnalysis) UsesComponent(id string) bool {
	return a.ComponentsUsed[id]
}

// Enchantment identifies one stored enchantment condition.
type Enchantment struct {
	ID    string
	Level int
}

// ExecutionPath is a single reachable branch through an item's selector
// tree, bound to one target model.
type ExecutionPath struct {
	Contexts    []string
	Enchantment *Enchantment
	Component   string
	TargetModel string
	Priority    int
	IsFallback  bool
}

// Path specificity priorities, low to high.
const (
	PriorityContextOnly      = 0
	PriorityComponent        = 1
	PriorityComponentContext = 2
)
