package writers

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
)

// citKeyOrder fixes the position of the well-known keys; every other
// flattened key follows, sorted.
var citKeyOrder = []string{"type", "items", "model", "enchantmentIDs", "enchantmentLevels"}

// CITWriter serializes metadata-matching properties files: flat
// key=value lines, nested match predicates flattened via dotted paths,
// array indices rendered as key.[index].
type CITWriter struct {
	fs   afero.Fs
	root string
}

// Type implements Writer.
func (w *CITWriter) Type() model.RequestType { return model.TypeCITProperties }

// Write implements Writer.
func (w *CITWriter) Write(req model.WriteRequest) (int64, error) {
	flat := map[string]string{}
	flattenProperties("", req.Content, flat)

	var lines []string
	emitted := map[string]bool{}
	for _, key := range citKeyOrder {
		if v, ok := flat[key]; ok {
			lines = append(lines, key+"="+v)
			emitted[key] = true
		}
	}
	var rest []string
	for key := range flat {
		if !emitted[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		lines = append(lines, key+"="+flat[key])
	}

	data := []byte(strings.Join(lines, "\n") + "\n")
	return writeFile(w.fs, path.Join(w.root, req.Path), data)
}

// flattenProperties renders a nested content value into flat dotted
// keys. Arrays contribute a .[index] path segment.
func flattenProperties(prefix string, v interface{}, out map[string]string) {
	switch value := v.(type) {
	case map[string]interface{}:
		for k, nested := range value {
			flattenProperties(joinKey(prefix, k), nested, out)
		}
	case map[string]string:
		for k, nested := range value {
			out[joinKey(prefix, k)] = nested
		}
	case []interface{}:
		for i, nested := range value {
			flattenProperties(fmt.Sprintf("%s.[%d]", prefix, i), nested, out)
		}
	case string:
		out[prefix] = value
	case float64:
		out[prefix] = trimFloat(value)
	case int:
		out[prefix] = fmt.Sprintf("%d", value)
	case bool:
		out[prefix] = fmt.Sprintf("%t", value)
	case nil:
		// skipped
	default:
		out[prefix] = fmt.Sprintf("%v", value)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// trimFloat renders whole numbers without a decimal point, the way the
// legacy properties format expects levels and counts.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", f)
}
