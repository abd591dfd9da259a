package locator

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrUnsetVariable is returned by Expand when a template names a variable
// missing from the environment snapshot.
var ErrUnsetVariable = errors.New("unset environment variable")

// envVarRegex matches ${NAME} references.
var envVarRegex = regexp.MustCompile(`\$\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}`)

// Environ is a snapshot of environment variables.
type Environ map[string]string

// EnvironFromOS snapshots the process environment.
func EnvironFromOS() Environ {
	env := make(Environ)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// Expand substitutes ${NAME} references in template from env. Variables
// that are set to the empty string expand to the empty string; variables
// that are not set at all are an error.
func Expand(template string, env Environ) (string, error) {
	var missing []string
	out := envVarRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		value, ok := env[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%s in %q: %w", strings.Join(missing, ", "), template, ErrUnsetVariable)
	}
	return out, nil
}
