package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat specifies how command results are printed.
type OutputFormat string

const (
	// FormatText prints one styled line per result.
	FormatText OutputFormat = "text"

	// FormatTable prints a bordered table.
	FormatTable OutputFormat = "table"

	// FormatJSON prints indented JSON.
	FormatJSON OutputFormat = "json"

	// FormatYAML prints YAML.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid reports whether f is a known format.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Structured reports whether f is machine-readable.
func (f OutputFormat) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// ParseOutputFormat parses a format name case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, true
	case "table":
		return FormatTable, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"text", "table", "json", "yaml"}
}

// WriteStructured encodes v as JSON or YAML.
func WriteStructured(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}
