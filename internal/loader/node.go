package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNodeNotFound is returned when a JavaScript configuration must be
// evaluated and no Node.js binary is available.
var ErrNodeNotFound = errors.New("node binary not found")

// exportScript loads the module named by argv[1] and prints its exported
// value as JSON. CommonJS is tried first, then ESM via dynamic import.
// Cycles are dropped and RegExp values are rendered as strings.
const exportScript = `
const file = process.argv[1];
const load = async () => {
  try {
    return require(file);
  } catch (err) {
    if (err && (err.code === 'ERR_REQUIRE_ESM' || err.code === 'ERR_REQUIRE_ASYNC_MODULE')) {
      return import(require('url').pathToFileURL(file).href);
    }
    throw err;
  }
};
load().then((mod) => {
  const seen = new WeakSet();
  const json = JSON.stringify(mod === undefined ? null : mod, (key, value) => {
    if (value instanceof RegExp) return String(value);
    if (typeof value === 'object' && value !== null) {
      if (seen.has(value)) return undefined;
      seen.add(value);
    }
    return value;
  });
  process.stdout.write(json === undefined ? 'null' : json);
}).catch((err) => {
  process.stderr.write(String((err && err.stack) || err));
  process.exit(1);
});
`

// Evaluator turns a JavaScript configuration module into its exported value.
type Evaluator interface {
	Evaluate(ctx context.Context, path string) (any, error)
}

// NodeEvaluator evaluates configuration modules in a Node.js subprocess.
type NodeEvaluator struct {
	// Binary is the node executable. Empty means "node" from PATH.
	Binary string
}

// Evaluate runs the module at path and decodes its JSON-serialized export.
func (n *NodeEvaluator) Evaluate(ctx context.Context, path string) (any, error) {
	bin, err := n.binary()
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-e", exportScript, path)
	cmd.Dir = filepath.Dir(path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("evaluating %s: %w", path, err)
		}
		return nil, fmt.Errorf("evaluating %s: %w: %s", path, err, firstLines(msg, 5))
	}

	return decodeJSON(stdout.Bytes())
}

func (n *NodeEvaluator) binary() (string, error) {
	name := n.Binary
	if name == "" {
		name = "node"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNodeNotFound)
	}
	return path, nil
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
