package model

import (
	"fmt"
	"path"
	"strings"
)

const (
	// AssetsDir is the conventional root of namespaced pack assets.
	AssetsDir = "assets"

	categoryItems    = "items"
	categoryModels   = "models"
	categoryTextures = "textures"

	structuredDataExt = ".json"
	textureExt        = ".png"

	// TemplatePathSegment marks hand-authored geometry assets that the
	// compatibility postprocessor must never regenerate.
	TemplatePathSegment = "template"
)

// AssetPathComponents defines the parts of a namespaced asset path,
// as in: assets/{namespace}/{category}/{rel...}.
type AssetPathComponents struct {
	Namespace string
	Category  string
	Rel       string
	FileName  string
}

// GetAssetPathComponents yields the components of a parsed asset path.
func GetAssetPathComponents(assetPath string) (AssetPathComponents, error) {
	const minParts = 4 // as in: assets/{namespace}/{category}/{file}
	cs := strings.Split(path.Clean(filepathToSlash(assetPath)), "/")

	// Tolerate an absolute or prefixed input; anchor on the assets dir.
	start := -1
	for i, c := range cs {
		if c == AssetsDir {
			start = i
			break
		}
	}
	if start < 0 || len(cs)-start < minParts {
		return AssetPathComponents{},
			fmt.Errorf("path is invalid: expect at least %d parts below %q: %s", minParts-1, AssetsDir, assetPath)
	}
	cs = cs[start:]
	return AssetPathComponents{
		Namespace: cs[1],
		Category:  cs[2],
		Rel:       strings.Join(cs[3:], "/"),
		FileName:  cs[len(cs)-1],
	}, nil
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// IsItemPath reports whether p is an item descriptor file.
func IsItemPath(p string) bool {
	c, err := GetAssetPathComponents(p)
	return err == nil && c.Category == categoryItems && strings.HasSuffix(c.FileName, structuredDataExt)
}

// IsModelPath reports whether p is a model descriptor file.
func IsModelPath(p string) bool {
	c, err := GetAssetPathComponents(p)
	return err == nil && c.Category == categoryModels && strings.HasSuffix(c.FileName, structuredDataExt)
}

// IsTexturePath reports whether p is a texture image file.
func IsTexturePath(p string) bool {
	c, err := GetAssetPathComponents(p)
	return err == nil && c.Category == categoryTextures && strings.HasSuffix(c.FileName, textureExt)
}

// IsTemplatePath reports whether p addresses a protected template asset:
// any path segment equal to the reserved template segment, or a file
// name carrying it as a prefix.
func IsTemplatePath(p string) bool {
	for _, seg := range strings.Split(filepathToSlash(p), "/") {
		if seg == TemplatePathSegment || strings.HasPrefix(seg, TemplatePathSegment+"_") {
			return true
		}
	}
	return false
}

// ItemIDFromPath derives the item id from an item descriptor path.
func ItemIDFromPath(p string) (string, error) {
	c, err := GetAssetPathComponents(p)
	if err != nil {
		return "", err
	}
	if c.Category != categoryItems {
		return "", fmt.Errorf("path is not an item descriptor: %s", p)
	}
	return strings.TrimSuffix(c.Rel, structuredDataExt), nil
}

// CITPropertiesPath builds the output path of a metadata-matching
// properties file for one item rule.
func CITPropertiesPath(itemID, rule string) string {
	return path.Join(AssetsDir, "minecraft", "optifine", "cit", itemID, rule+".properties")
}

// GeneratedModelPath builds the output path of a generated model file
// from a model reference such as "minecraft:item/wooden_sword".
func GeneratedModelPath(ref string) string {
	return path.Join(AssetsDir, "minecraft", categoryModels, StripNamespace(ref)+structuredDataExt)
}

// ItemModelPath builds the output path of the generated model for an
// item id, optionally under a per-rule subdirectory.
func ItemModelPath(itemID string, rule string) string {
	if rule == "" {
		return path.Join(AssetsDir, "minecraft", categoryModels, "item", itemID+structuredDataExt)
	}
	return path.Join(AssetsDir, "minecraft", categoryModels, "item", itemID, rule+structuredDataExt)
}

// ItemModelRef builds the model reference matching ItemModelPath, the
// form CIT files and overrides use to point at generated models.
func ItemModelRef(itemID string, rule string) string {
	if rule == "" {
		return path.Join("item", itemID)
	}
	return path.Join("item", itemID, rule)
}

// StripNamespace removes a "namespace:" prefix from a reference.
func StripNamespace(ref string) string {
	if i := strings.Index(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
