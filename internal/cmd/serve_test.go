package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/aliasresolve/internal/host"
)

func TestServe(t *testing.T) {
	p := newProject(t, defaultProjectConfig)

	var in strings.Builder
	for i, spec := range []string{"@ui/button", "lodash", "utils/format"} {
		fmt.Fprintf(&in, `{"id": %d, "specifier": %q, "context": %q}`+"\n", i, spec, p.dir)
	}
	in.WriteString("not json\n")

	out, err := execute(t, in.String(), "serve", "--config", p.config, "--concurrency", "2")
	require.NoError(t, err)

	var replies []host.Reply
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var r host.Reply
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		replies = append(replies, r)
	}
	require.Len(t, replies, 4)

	assert.Equal(t, host.KindRewritten, replies[0].Kind)
	assert.Equal(t, filepath.Join(p.dir, "src", "ui", "button.js"), replies[0].Path)
	assert.Equal(t, host.KindPassThrough, replies[1].Kind)
	assert.Equal(t, filepath.Join(p.dir, "src", "utils", "format.ts"), replies[2].Path)
	assert.Equal(t, host.KindInvalidRequest, replies[3].Kind)
}

func TestServe_ConfigNotFoundKeepsServing(t *testing.T) {
	dir := t.TempDir()
	in := `{"specifier": "a"}` + "\n" + `{"specifier": "b"}` + "\n"

	out, err := execute(t, in, "serve", "--config", filepath.Join(dir, "missing.json"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var r host.Reply
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		assert.Equal(t, host.KindConfigNotFound, r.Kind)
		assert.NotEmpty(t, r.Error)
	}
}
