package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

func leaf(ref string) model.LeafNode {
	return model.LeafNode{Model: ref}
}

func TestAnalyzeContextSelectWithFallback(t *testing.T) {
	tree := model.ContextSelectNode{
		Cases: []model.ContextCase{
			{When: []string{"gui", "fixed"}, Model: leaf("minecraft:item/book_closed")},
			{When: []string{"ground"}, Model: leaf("minecraft:item/book_ground")},
		},
		Fallback: leaf("minecraft:item/book_3d"),
	}

	analysis, err := New(nil).Analyze("book", tree)
	require.NoError(t, err)

	// Case contexts first, then the backfilled canonical ones.
	assert.Equal(t, []string{
		"gui", "fixed", "ground",
		"firstperson_righthand", "thirdperson_righthand",
		"firstperson_lefthand", "thirdperson_lefthand", "head",
	}, analysis.DisplayContexts)

	require.Len(t, analysis.ConditionalModels, 3)
	assert.Equal(t, model.PureDisplayContext, analysis.ConditionalModels[0].Component)
	assert.Equal(t, map[string]string{
		"gui":   "minecraft:item/book_closed",
		"fixed": "minecraft:item/book_closed",
	}, analysis.ConditionalModels[0].ContextMappings)

	// The fallback backfills exactly the five unclaimed canonical contexts.
	fallback := analysis.ConditionalModels[2]
	assert.True(t, fallback.Fallback)
	assert.Len(t, fallback.ContextMappings, 5)
	for _, ctx := range []string{
		"firstperson_righthand", "thirdperson_righthand",
		"firstperson_lefthand", "thirdperson_lefthand", "head",
	} {
		assert.Equal(t, "minecraft:item/book_3d", fallback.ContextMappings[ctx])
	}
}

func TestAnalyzeContextDeduplication(t *testing.T) {
	tree := model.ContextSelectNode{
		Cases: []model.ContextCase{
			{When: []string{"gui", "gui", "fixed"}, Model: leaf("minecraft:item/a")},
			{When: []string{"fixed", "ground"}, Model: leaf("minecraft:item/b")},
		},
	}
	analysis, err := New(nil).Analyze("item", tree)
	require.NoError(t, err)
	assert.Equal(t, []string{"gui", "fixed", "ground"}, analysis.DisplayContexts)
}

func TestAnalyzeComponentSelectCarriesContexts(t *testing.T) {
	tree := model.ContextSelectNode{
		Cases: []model.ContextCase{
			{
				When: []string{"firstperson_righthand", "thirdperson_righthand"},
				Model: model.ComponentSelectNode{
					Component: "minecraft:stored_enchantments",
					Cases: []model.ComponentCase{
						{When: map[string]int{"minecraft:channeling": 1}, Model: leaf("minecraft:item/books/channeling_open")},
					},
				},
			},
		},
	}

	analysis, err := New(nil).Analyze("enchanted_book", tree)
	require.NoError(t, err)
	assert.True(t, analysis.UsesComponent("minecraft:stored_enchantments"))

	require.Len(t, analysis.ConditionalModels, 1)
	cm := analysis.ConditionalModels[0]
	assert.Equal(t, "minecraft:stored_enchantments", cm.Component)
	assert.Equal(t, []string{"minecraft:channeling=1"}, cm.Conditions)
	assert.Equal(t, map[string]string{
		"firstperson_righthand": "minecraft:item/books/channeling_open",
		"thirdperson_righthand": "minecraft:item/books/channeling_open",
	}, cm.ContextMappings)
}

func TestAnalyzeBooleanConditionBranches(t *testing.T) {
	tree := model.ConditionNode{
		Predicate: "minecraft:written_book_content",
		OnTrue:    leaf("minecraft:item/book_written"),
		OnFalse:   leaf("minecraft:item/book_plain"),
	}

	analysis, err := New(nil).Analyze("book", tree)
	require.NoError(t, err)
	assert.True(t, analysis.UsesComponent("minecraft:written_book_content"))

	// Both branches recorded, distinguishable by traversal order only:
	// the predicate is not encoded into the entries.
	require.Len(t, analysis.ConditionalModels, 2)
	assert.Equal(t, model.PureDisplayContext, analysis.ConditionalModels[0].Component)
	assert.Equal(t, "minecraft:item/book_written", analysis.ConditionalModels[0].ContextMappings[""])
	assert.Equal(t, "minecraft:item/book_plain", analysis.ConditionalModels[1].ContextMappings[""])
}

func TestAnalyzeRootLeaf(t *testing.T) {
	analysis, err := New(nil).Analyze("stick", leaf("minecraft:item/stick"))
	require.NoError(t, err)
	require.Len(t, analysis.ConditionalModels, 1)
	assert.Equal(t, map[string]string{"": "minecraft:item/stick"}, analysis.ConditionalModels[0].ContextMappings)
	assert.Empty(t, analysis.DisplayContexts)
}

func TestAnalyzeNilTree(t *testing.T) {
	_, err := New(nil).Analyze("broken", nil)
	require.Error(t, err)
}
