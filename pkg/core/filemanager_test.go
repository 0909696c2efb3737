package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

func TestFileManagerSingletonPassthrough(t *testing.T) {
	fm := NewFileManager(nil, NewOverrideMerger())
	fm.Add(pommelRequest("a", 0, heldOverride("minecraft:item/a")))
	fm.Add(model.WriteRequest{Type: model.TypeCITProperties, Path: "b", Content: map[string]interface{}{"type": "item"}})
	require.Equal(t, 2, fm.Pending())

	resolved, err := fm.Resolve()
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "a", resolved[0].Path)
	assert.Equal(t, "b", resolved[1].Path)
}

func TestFileManagerMergesConflictGroups(t *testing.T) {
	fm := NewFileManager(nil, NewOverrideMerger())
	fm.Add(
		pommelRequest("item/book.json", 5, heldOverride("minecraft:item/open")),
		pommelRequest("item/book.json", 5, offhandOverride("minecraft:item/closed")),
		pommelRequest("item/other.json", 0, heldOverride("minecraft:item/x")),
	)

	resolved, err := fm.Resolve()
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	overrides := resolved[0].Content["overrides"].([]model.Override)
	require.Len(t, overrides, 2)
	assert.Equal(t, "item/other.json", resolved[1].Path)
}

func TestFileManagerPriorityFallbackWithoutMerger(t *testing.T) {
	// No merger registered: the conflict group collapses to the
	// numerically highest priority, first seen winning ties.
	fm := NewFileManager(nil)
	fm.Add(
		model.WriteRequest{Type: model.TypeVanillaModel, Path: "p", Priority: 0, Content: map[string]interface{}{"textures": "a"}},
		model.WriteRequest{Type: model.TypeVanillaModel, Path: "p", Priority: 7, Content: map[string]interface{}{"textures": "b"}},
		model.WriteRequest{Type: model.TypeVanillaModel, Path: "p", Priority: 7, Content: map[string]interface{}{"textures": "c"}},
	)

	resolved, err := fm.Resolve()
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "b", resolved[0].Content["textures"])
}

func TestFileManagerCrossTypePathOwnership(t *testing.T) {
	// A plain copy and a generated model claim the same output file;
	// only the higher-priority generated artifact survives.
	fm := NewFileManager(nil, NewOverrideMerger())
	fm.Add(
		pommelRequest("assets/minecraft/models/item/book.json", 5, heldOverride("minecraft:item/open")),
		model.WriteRequest{
			Type:    model.TypeTextureCopy,
			Path:    "assets/minecraft/models/item/book.json",
			Content: map[string]interface{}{"sourcePath": "pack/assets/minecraft/models/item/book.json"},
		},
	)

	resolved, err := fm.Resolve()
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, model.TypePommelModel, resolved[0].Type)
}

func TestFileManagerCrossTypeTieKeepsFirstSeen(t *testing.T) {
	fm := NewFileManager(nil)
	fm.Add(
		model.WriteRequest{Type: model.TypeVanillaModel, Path: "same.json", Priority: 0},
		model.WriteRequest{Type: model.TypeTextureCopy, Path: "same.json", Priority: 0},
	)

	resolved, err := fm.Resolve()
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, model.TypeVanillaModel, resolved[0].Type)
}
