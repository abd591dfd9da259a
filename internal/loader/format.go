package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

// Format identifies how a configuration file is decoded.
type Format string

const (
	// FormatJavaScript files are evaluated by Node.js.
	FormatJavaScript Format = "javascript"
	// FormatJSON files are decoded as JSON.
	FormatJSON Format = "json"
	// FormatYAML files are decoded as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML files are decoded as TOML.
	FormatTOML Format = "toml"
	// FormatCUE files are compiled and evaluated as CUE.
	FormatCUE Format = "cue"
)

// FormatFor picks a Format from the file extension. Unknown extensions are
// treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return FormatJavaScript
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".cue":
		return FormatCUE
	default:
		return FormatJSON
	}
}

// decodeData decodes a non-JavaScript configuration into generic Go values.
func decodeData(format Format, data []byte, filename string) (any, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	case FormatCUE:
		return decodeCUE(data, filename)
	default:
		return decodeJSON(data)
	}
}

// decodeJSON accepts strict JSON only. The YAML-backed decoder alone would
// also take trailing commas and flow syntax.
func decodeJSON(data []byte) (any, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	var v any
	if err := k8syaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return v, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return v, nil
}

func decodeTOML(data []byte) (any, error) {
	v := map[string]any{}
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding TOML: %w", err)
	}
	return v, nil
}

// decodeCUE compiles a CUE file and requires it to be concrete.
func decodeCUE(data []byte, filename string) (any, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return nil, formatCUEError(value.Err(), filename)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, filename)
	}
	var v any
	if err := value.Decode(&v); err != nil {
		return nil, formatCUEError(err, filename)
	}
	return v, nil
}

// formatCUEError renders CUE errors as "<file>: <path>: <message>" lines.
func formatCUEError(err error, filename string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		path := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		if path != "" {
			lines = append(lines, path+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: evaluation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}
