package alias

import (
	"fmt"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

// Normalized is the shape-independent view of a configuration value.
type Normalized struct {
	Aliases     Table
	Extensions  Extensions
	MultiTarget bool
}

// Normalize classifies a decoded configuration value and extracts its alias
// table and extension list. It accepts a single configuration object, an
// array of configurations (multi-target), or either of those wrapped in an
// ES module default export.
//
// A value that is neither an array nor an object declaring an alias map
// returns an error wrapping ErrMalformedConfig.
func Normalize(v any) (Normalized, error) {
	v = unwrapDefault(v)

	if list, ok := asList(v); ok {
		return normalizeList(list), nil
	}

	obj, ok := asMap(v)
	if !ok {
		return Normalized{}, fmt.Errorf("exported value is %s, not an object or array: %w", kindOf(v), oerrors.ErrMalformedConfig)
	}

	aliases, ok := aliasesOf(obj)
	if !ok {
		return Normalized{}, fmt.Errorf("no alias or resolve.alias table: %w", oerrors.ErrMalformedConfig)
	}

	return Normalized{
		Aliases:    aliases,
		Extensions: Extensions{}.Append(extensionsOf(obj)...),
	}, nil
}

// normalizeList merges the configurations of a multi-target export.
func normalizeList(list []any) Normalized {
	n := Normalized{
		Aliases:     Table{},
		Extensions:  Extensions{},
		MultiTarget: true,
	}
	for _, elem := range list {
		obj, ok := asMap(elem)
		if !ok {
			continue
		}
		if aliases, ok := aliasesOf(obj); ok {
			n.Aliases.Merge(aliases)
		}
		if exts := extensionsOf(obj); len(exts) > 0 {
			n.Extensions = n.Extensions.Append(exts...)
		}
	}
	return n
}

// unwrapDefault strips an ES module default-export wrapper.
func unwrapDefault(v any) any {
	obj, ok := asMap(v)
	if !ok {
		return v
	}
	def, hasDefault := obj["default"]
	if !hasDefault || def == nil {
		return v
	}
	if truthy(obj["__esModule"]) || len(obj) == 1 {
		return def
	}
	return v
}

// aliasesOf reads alias, falling back to resolve.alias. Non-string targets
// are skipped.
func aliasesOf(obj map[string]any) (Table, bool) {
	raw, ok := asMap(obj["alias"])
	if !ok {
		resolve, isMap := asMap(obj["resolve"])
		if !isMap {
			return nil, false
		}
		if raw, ok = asMap(resolve["alias"]); !ok {
			return nil, false
		}
	}

	table := make(Table, len(raw))
	for k, v := range raw {
		if target, isString := v.(string); isString {
			table[k] = target
		}
	}
	return table, true
}

// extensionsOf reads extensions, falling back to resolve.extensions.
func extensionsOf(obj map[string]any) []string {
	raw, ok := asList(obj["extensions"])
	if !ok {
		resolve, isMap := asMap(obj["resolve"])
		if !isMap {
			return nil
		}
		if raw, ok = asList(resolve["extensions"]); !ok {
			return nil
		}
	}

	exts := make([]string, 0, len(raw))
	for _, v := range raw {
		if ext, isString := v.(string); isString {
			exts = append(exts, ext)
		}
	}
	return exts
}

// asMap accepts the object shapes produced by the JSON, YAML, TOML and CUE decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asList accepts the array shapes produced by the supported decoders.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	case string:
		return b != ""
	case float64:
		return b != 0
	case int:
		return b != 0
	case int64:
		return b != 0
	default:
		return true
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64, float32, int, int64, uint64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
