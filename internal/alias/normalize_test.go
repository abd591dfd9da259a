package alias

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

func TestNormalize_SingleObject(t *testing.T) {
	t.Run("top-level alias and extensions", func(t *testing.T) {
		n, err := Normalize(map[string]any{
			"alias":      map[string]any{"@ui": "./src/ui"},
			"extensions": []any{".js", ".jsx", ".js"},
		})
		require.NoError(t, err)
		assert.Equal(t, Table{"@ui": "./src/ui"}, n.Aliases)
		assert.Equal(t, Extensions{".js", ".jsx"}, n.Extensions)
		assert.False(t, n.MultiTarget)
	})

	t.Run("nested resolve block", func(t *testing.T) {
		n, err := Normalize(map[string]any{
			"resolve": map[string]any{
				"alias":      map[string]any{"@ui": "/proj/src/ui"},
				"extensions": []any{".js", ".css"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, Table{"@ui": "/proj/src/ui"}, n.Aliases)
		assert.Equal(t, Extensions{".js", ".css"}, n.Extensions)
	})

	t.Run("top-level alias wins over resolve.alias", func(t *testing.T) {
		n, err := Normalize(map[string]any{
			"alias":   map[string]any{"a": "/top"},
			"resolve": map[string]any{"alias": map[string]any{"a": "/nested"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "/top", n.Aliases["a"])
	})

	t.Run("non-string targets are ignored", func(t *testing.T) {
		n, err := Normalize(map[string]any{
			"alias": map[string]any{"fs": false, "ok": "/ok", "list": []any{"/a", "/b"}},
		})
		require.NoError(t, err)
		assert.Equal(t, Table{"ok": "/ok"}, n.Aliases)
	})

	t.Run("empty alias map is valid", func(t *testing.T) {
		n, err := Normalize(map[string]any{"alias": map[string]any{}})
		require.NoError(t, err)
		assert.Empty(t, n.Aliases)
	})

	t.Run("yaml style map keys", func(t *testing.T) {
		n, err := Normalize(map[any]any{
			"alias": map[any]any{"@ui": "/proj/src/ui"},
		})
		require.NoError(t, err)
		assert.Equal(t, Table{"@ui": "/proj/src/ui"}, n.Aliases)
	})
}

func TestNormalize_MultiTarget(t *testing.T) {
	t.Run("later entries override, new keys are additive", func(t *testing.T) {
		n, err := Normalize([]any{
			map[string]any{"alias": map[string]any{"a": "x"}},
			map[string]any{"alias": map[string]any{"a": "y", "b": "z"}},
		})
		require.NoError(t, err)
		assert.Equal(t, Table{"a": "y", "b": "z"}, n.Aliases)
		assert.True(t, n.MultiTarget)
	})

	t.Run("extensions union in first-seen order", func(t *testing.T) {
		n, err := Normalize([]any{
			map[string]any{"resolve": map[string]any{"extensions": []any{".js", ".json"}}},
			map[string]any{"extensions": []any{}},
			map[string]any{"extensions": []any{".ts", ".js"}},
		})
		require.NoError(t, err)
		assert.Equal(t, Extensions{".js", ".json", ".ts"}, n.Extensions)
	})

	t.Run("array without aliases is valid and empty", func(t *testing.T) {
		n, err := Normalize([]any{
			map[string]any{"entry": "./index.js"},
			"not-an-object",
		})
		require.NoError(t, err)
		assert.Empty(t, n.Aliases)
		assert.Empty(t, n.Extensions)
	})

	t.Run("toml array of tables", func(t *testing.T) {
		n, err := Normalize([]map[string]any{
			{"alias": map[string]any{"a": "/a"}},
			{"alias": map[string]any{"b": "/b"}},
		})
		require.NoError(t, err)
		assert.Equal(t, Table{"a": "/a", "b": "/b"}, n.Aliases)
	})
}

func TestNormalize_DefaultExport(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{
			name: "babel interop wrapper",
			value: map[string]any{
				"__esModule": true,
				"default":    map[string]any{"alias": map[string]any{"@ui": "/ui"}},
			},
		},
		{
			name: "esm namespace with only default",
			value: map[string]any{
				"default": map[string]any{"resolve": map[string]any{"alias": map[string]any{"@ui": "/ui"}}},
			},
		},
		{
			name: "default wrapping an array",
			value: map[string]any{
				"__esModule": true,
				"default":    []any{map[string]any{"alias": map[string]any{"@ui": "/ui"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Normalize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, "/ui", n.Aliases["@ui"])
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "null", value: nil},
		{name: "string", value: "webpack"},
		{name: "object without alias", value: map[string]any{"entry": "./index.js"}},
		{name: "empty object", value: map[string]any{}},
		{name: "alias is not a map", value: map[string]any{"alias": "src"}},
		{name: "resolve without alias", value: map[string]any{"resolve": map[string]any{"extensions": []any{".js"}}}},
		{name: "default without esModule flag among other keys", value: map[string]any{
			"default": map[string]any{"alias": map[string]any{}},
			"other":   1.0,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrMalformedConfig))
		})
	}
}
