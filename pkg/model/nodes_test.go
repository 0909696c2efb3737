package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdsqqq/resource-pack-backporter/pkg/errors"
)

func TestDecodeLeaf(t *testing.T) {
	node, err := DecodeNode([]byte(`{"type":"minecraft:model","model":"minecraft:item/book"}`))
	require.NoError(t, err)
	leaf, ok := node.(LeafNode)
	require.True(t, ok)
	assert.Equal(t, "minecraft:item/book", leaf.Model)
}

func TestDecodeContextSelect(t *testing.T) {
	data := []byte(`{
		"type": "minecraft:select",
		"property": "minecraft:display_context",
		"cases": [
			{"when": ["gui", "fixed"], "model": {"type": "minecraft:model", "model": "minecraft:item/book_closed"}},
			{"when": "ground", "model": {"type": "minecraft:model", "model": "minecraft:item/book_ground"}}
		],
		"fallback": {"type": "minecraft:model", "model": "minecraft:item/book_3d"}
	}`)
	node, err := DecodeNode(data)
	require.NoError(t, err)
	sel, ok := node.(ContextSelectNode)
	require.True(t, ok)
	require.Len(t, sel.Cases, 2)
	assert.Equal(t, []string{"gui", "fixed"}, sel.Cases[0].When)
	assert.Equal(t, []string{"ground"}, sel.Cases[1].When)
	require.NotNil(t, sel.Fallback)
	fallback, ok := sel.Fallback.(LeafNode)
	require.True(t, ok)
	assert.Equal(t, "minecraft:item/book_3d", fallback.Model)
}

func TestDecodeComponentSelect(t *testing.T) {
	data := []byte(`{
		"type": "minecraft:select",
		"property": "minecraft:component",
		"component": "minecraft:stored_enchantments",
		"cases": [
			{"when": {"minecraft:channeling": 1}, "model": {"type": "minecraft:model", "model": "minecraft:item/books/channeling"}},
			{"when": [{"minecraft:sharpness": 3}], "model": {"type": "minecraft:model", "model": "minecraft:item/books/sharpness_3"}}
		]
	}`)
	node, err := DecodeNode(data)
	require.NoError(t, err)
	sel, ok := node.(ComponentSelectNode)
	require.True(t, ok)
	assert.Equal(t, "minecraft:stored_enchantments", sel.Component)
	require.Len(t, sel.Cases, 2)
	assert.Equal(t, map[string]int{"minecraft:channeling": 1}, sel.Cases[0].When)
	assert.Equal(t, map[string]int{"minecraft:sharpness": 3}, sel.Cases[1].When)
}

func TestDecodeCondition(t *testing.T) {
	data := []byte(`{
		"type": "minecraft:condition",
		"property": "minecraft:has_component",
		"predicate": "minecraft:written_book_content",
		"on_true": {"type": "minecraft:model", "model": "minecraft:item/book_written"},
		"on_false": {"type": "minecraft:model", "model": "minecraft:item/book_plain"}
	}`)
	node, err := DecodeNode(data)
	require.NoError(t, err)
	cond, ok := node.(ConditionNode)
	require.True(t, ok)
	assert.Equal(t, "minecraft:written_book_content", cond.Predicate)
	require.NotNil(t, cond.OnTrue)
	require.NotNil(t, cond.OnFalse)
}

func TestDecodeUnknownShape(t *testing.T) {
	_, err := DecodeNode([]byte(`{"type":"minecraft:range_dispatch"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownNodeType))

	_, err = DecodeNode([]byte(`{"type":"minecraft:select","property":"minecraft:charge_type"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownNodeType))
}

func TestParseItemDescriptor(t *testing.T) {
	descriptor, err := ParseItemDescriptor([]byte(`{"model":{"type":"minecraft:model","model":"minecraft:item/book"}}`))
	require.NoError(t, err)
	_, ok := descriptor.Model.(LeafNode)
	assert.True(t, ok)

	_, err = ParseItemDescriptor([]byte(`{}`))
	require.Error(t, err)
}
