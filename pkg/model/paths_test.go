package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assetPathFixture struct {
	name       string
	path       string
	wantsError bool
	expected   AssetPathComponents
}

func assetPathTestCases() []assetPathFixture {
	return []assetPathFixture{
		// happy path
		{
			name: "item descriptor",
			path: "assets/minecraft/items/wooden_sword.json",
			expected: AssetPathComponents{
				Namespace: "minecraft",
				Category:  "items",
				Rel:       "wooden_sword.json",
				FileName:  "wooden_sword.json",
			},
		},
		{
			name: "nested model",
			path: "assets/minecraft/models/item/books_3d/template_book_open.json",
			expected: AssetPathComponents{
				Namespace: "minecraft",
				Category:  "models",
				Rel:       "item/books_3d/template_book_open.json",
				FileName:  "template_book_open.json",
			},
		},
		{
			name: "texture under input prefix",
			path: "input-pack/assets/minecraft/textures/item/enchanted_book.png",
			expected: AssetPathComponents{
				Namespace: "minecraft",
				Category:  "textures",
				Rel:       "item/enchanted_book.png",
				FileName:  "enchanted_book.png",
			},
		},
		{
			name:       "too short",
			path:       "assets/minecraft/items",
			wantsError: true,
		},
		{
			name:       "no assets anchor",
			path:       "somewhere/else/file.json",
			wantsError: true,
		},
	}
}

func TestGetAssetPathComponents(t *testing.T) {
	for _, fixture := range assetPathTestCases() {
		t.Run(fixture.name, func(t *testing.T) {
			actual, err := GetAssetPathComponents(fixture.path)
			if fixture.wantsError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, fixture.expected, actual)
		})
	}
}

func TestPathClassification(t *testing.T) {
	assert.True(t, IsItemPath("pack/assets/minecraft/items/writable_book.json"))
	assert.False(t, IsItemPath("pack/assets/minecraft/items/notes.txt"))
	assert.True(t, IsModelPath("pack/assets/minecraft/models/item/book.json"))
	assert.False(t, IsModelPath("pack/assets/minecraft/textures/item/book.png"))
	assert.True(t, IsTexturePath("pack/assets/minecraft/textures/item/book.png"))
	assert.False(t, IsTexturePath("pack/assets/minecraft/textures/item/book.png.mcmeta"))
}

func TestIsTemplatePath(t *testing.T) {
	assert.True(t, IsTemplatePath("assets/minecraft/models/item/books_3d/template_book_open.json"))
	assert.True(t, IsTemplatePath("assets/minecraft/models/template/book.json"))
	assert.False(t, IsTemplatePath("assets/minecraft/models/item/book.json"))
}

func TestItemIDFromPath(t *testing.T) {
	id, err := ItemIDFromPath("pack/assets/minecraft/items/enchanted_book.json")
	require.NoError(t, err)
	assert.Equal(t, "enchanted_book", id)

	_, err = ItemIDFromPath("pack/assets/minecraft/models/item/enchanted_book.json")
	require.Error(t, err)
}

func TestOutputPathBuilders(t *testing.T) {
	assert.Equal(t,
		"assets/minecraft/optifine/cit/enchanted_book/channeling.properties",
		CITPropertiesPath("enchanted_book", "channeling"))
	assert.Equal(t,
		"assets/minecraft/models/item/enchanted_book.json",
		ItemModelPath("enchanted_book", ""))
	assert.Equal(t,
		"assets/minecraft/models/item/enchanted_book/channeling.json",
		ItemModelPath("enchanted_book", "channeling"))
	assert.Equal(t, "item/enchanted_book/channeling", ItemModelRef("enchanted_book", "channeling"))
	assert.Equal(t,
		"assets/minecraft/models/item/book.json",
		GeneratedModelPath("minecraft:item/book"))
}
