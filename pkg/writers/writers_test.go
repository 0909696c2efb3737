package writers

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdsqqq/resource-pack-backporter/pkg/errors"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

func readOutput(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

func TestPommelWriterEmitsAllSections(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &PommelWriter{fs: fs, root: "out"}

	n, err := w.Write(model.WriteRequest{
		Type: model.TypePommelModel,
		Path: "assets/minecraft/models/item/book.json",
		Content: map[string]interface{}{
			"textures": map[string]string{"layer0": "minecraft:item/book_closed"},
			"overrides": []model.Override{
				{Predicate: map[string]float64{"pommel:is_held": 1}, Model: "minecraft:item/book_open"},
			},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, n)

	out := readOutput(t, fs, "out/assets/minecraft/models/item/book.json")
	assert.Contains(t, out, `"parent": "item/handheld"`)
	assert.Contains(t, out, `"pommel:is_held": 1`)
	assert.Contains(t, out, `"minecraft:item/book_open"`)
}

func TestPommelWriterEmptySectionsStillPresent(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &PommelWriter{fs: fs, root: "out"}

	_, err := w.Write(model.WriteRequest{
		Type:    model.TypePommelModel,
		Path:    "m.json",
		Content: map[string]interface{}{},
	})
	require.NoError(t, err)

	out := readOutput(t, fs, "out/m.json")
	assert.Contains(t, out, `"textures": {}`)
	assert.Contains(t, out, `"overrides": []`)
}

func TestCITWriterKeyOrderAndFlattening(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &CITWriter{fs: fs, root: "out"}

	_, err := w.Write(model.WriteRequest{
		Type: model.TypeCITProperties,
		Path: "assets/minecraft/optifine/cit/enchanted_book/channeling.properties",
		Content: map[string]interface{}{
			"type":              "item",
			"items":             "enchanted_book",
			"model":             "item/enchanted_book/channeling",
			"enchantmentIDs":    "minecraft:channeling",
			"enchantmentLevels": "1",
			"nbt": map[string]interface{}{
				"StoredEnchantments": []interface{}{
					map[string]interface{}{"lvl": float64(1)},
				},
			},
		},
	})
	require.NoError(t, err)

	out := readOutput(t, fs, "out/assets/minecraft/optifine/cit/enchanted_book/channeling.properties")
	assert.Equal(t, "type=item\n"+
		"items=enchanted_book\n"+
		"model=item/enchanted_book/channeling\n"+
		"enchantmentIDs=minecraft:channeling\n"+
		"enchantmentLevels=1\n"+
		"nbt.StoredEnchantments.[0].lvl=1\n", out)
}

func TestVanillaWriterDefaultsParent(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := &VanillaWriter{fs: fs, root: "out"}

	_, err := w.Write(model.WriteRequest{
		Type: model.TypeVanillaModel,
		Path: "assets/minecraft/models/item/stick.json",
		Content: map[string]interface{}{
			"textures": map[string]string{"layer0": "item/stick"},
		},
	})
	require.NoError(t, err)

	out := readOutput(t, fs, "out/assets/minecraft/models/item/stick.json")
	assert.Contains(t, out, `"parent": "item/generated"`)
	assert.NotContains(t, out, "overrides")
}

func TestCopyWriter(t *testing.T) {
	src := afero.NewMemMapFs()
	dst := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(src, "pack/assets/minecraft/textures/item/book.png", []byte("png-bytes"), 0644))

	w := &CopyWriter{src: src, dst: dst, root: "out"}
	n, err := w.Write(model.WriteRequest{
		Type:    model.TypeTextureCopy,
		Path:    "assets/minecraft/textures/item/book.png",
		Content: map[string]interface{}{"sourcePath": "pack/assets/minecraft/textures/item/book.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "png-bytes", readOutput(t, dst, "out/assets/minecraft/textures/item/book.png"))
}

func TestCopyWriterMissingSourcePath(t *testing.T) {
	w := &CopyWriter{src: afero.NewMemMapFs(), dst: afero.NewMemMapFs(), root: "out"}
	_, err := w.Write(model.WriteRequest{Type: model.TypeTextureCopy, Path: "x.png"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSourcePath))
}

func TestRegistryUnknownType(t *testing.T) {
	r := NewRegistry(afero.NewMemMapFs(), afero.NewMemMapFs(), "out", nil)
	_, err := r.Write(model.WriteRequest{Type: model.RequestType("bogus"), Path: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRequestType))
}
