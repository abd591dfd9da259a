package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableKeys(t *testing.T) {
	table := Table{"b": "/b", "a": "/a", "@ui": "/ui"}
	assert.Equal(t, []string{"@ui", "a", "b"}, table.Keys())
}

func TestTableMerge(t *testing.T) {
	table := Table{"a": "x"}
	table.Merge(Table{"a": "y", "b": "z"})
	assert.Equal(t, Table{"a": "y", "b": "z"}, table)
}

func TestExtensionsAppend(t *testing.T) {
	tests := []struct {
		name     string
		start    Extensions
		add      []string
		expected Extensions
	}{
		{
			name:     "preserves first-seen order",
			start:    Extensions{".js"},
			add:      []string{".json", ".js", ".css"},
			expected: Extensions{".js", ".json", ".css"},
		},
		{
			name:     "drops empty strings",
			start:    nil,
			add:      []string{"", ".jsx", ""},
			expected: Extensions{".jsx"},
		},
		{
			name:     "nothing to add",
			start:    Extensions{".js"},
			add:      nil,
			expected: Extensions{".js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.start.Append(tt.add...))
		})
	}
}

func TestRecordFailed(t *testing.T) {
	var nilRecord *Record
	assert.False(t, nilRecord.Failed())
	assert.False(t, (&Record{}).Failed())
	assert.True(t, (&Record{Err: assert.AnError}).Failed())
}

func TestResultConstructors(t *testing.T) {
	pass := PassThrough("lodash/map")
	assert.False(t, pass.Rewritten)
	assert.Equal(t, "lodash/map", pass.Path)

	rw := RewriteTo("@ui/button", "/proj/src/ui/button.js")
	assert.True(t, rw.Rewritten)
	assert.Equal(t, "@ui/button", rw.Specifier)
	assert.Equal(t, "/proj/src/ui/button.js", rw.Path)
}
