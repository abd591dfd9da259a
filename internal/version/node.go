package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinNodeMajor is the oldest Node.js release that can evaluate ESM configs
// through dynamic import from a CommonJS entry point.
const MinNodeMajor = 14

var nodeVersionRegex = regexp.MustCompile(`v?(\d+)\.\d+\.\d+`)

// NodeBinaryInfo describes the Node.js binary used for JavaScript configs.
type NodeBinaryInfo struct {
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Found      bool   `json:"found" yaml:"found"`
	Compatible bool   `json:"compatible" yaml:"compatible"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
}

// DetectNodeBinary looks up name (default "node") in PATH and checks its
// version.
func DetectNodeBinary(ctx context.Context, name string) NodeBinaryInfo {
	if name == "" {
		name = "node"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return NodeBinaryInfo{Message: fmt.Sprintf("%s not found in PATH; JavaScript configs cannot be loaded", name)}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return NodeBinaryInfo{Path: path, Found: true, Message: "failed to get node version: " + err.Error()}
	}

	v, major, err := parseNodeVersion(out.String())
	if err != nil {
		return NodeBinaryInfo{Path: path, Found: true, Message: err.Error()}
	}

	info := NodeBinaryInfo{Version: v, Path: path, Found: true, Compatible: major >= MinNodeMajor}
	if info.Compatible {
		info.Message = "compatible"
	} else {
		info.Message = fmt.Sprintf("node %s is older than v%d", v, MinNodeMajor)
	}
	return info
}

// parseNodeVersion extracts "vMAJOR.MINOR.PATCH" and the major number.
func parseNodeVersion(output string) (string, int, error) {
	m := nodeVersionRegex.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return "", 0, fmt.Errorf("failed to parse node version from output: %q", output)
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return "", 0, fmt.Errorf("parsing node major version: %w", err)
	}
	v := m[0]
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v, major, nil
}
