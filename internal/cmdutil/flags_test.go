package cmdutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/aliasresolve/internal/watch"
)

func TestContextFlags(t *testing.T) {
	var f ContextFlags
	cmd := &cobra.Command{Use: "test"}
	f.AddTo(cmd)

	require.NotNil(t, cmd.Flags().Lookup("context"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir, err := f.Abs()
	require.NoError(t, err)
	assert.Equal(t, wd, dir)

	require.NoError(t, cmd.Flags().Set("context", "src/pages"))
	dir, err = f.Abs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "src", "pages"), dir)
}

func TestWatchFlags(t *testing.T) {
	var f WatchFlags
	cmd := &cobra.Command{Use: "test"}
	f.AddTo(cmd)

	for _, name := range []string{"requests", "dir", "pattern", "ignore", "debounce", "clear"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, watch.DefaultDebounce, f.Debounce)

	require.NoError(t, cmd.Flags().Set("pattern", "**/*.json"))
	require.NoError(t, cmd.Flags().Set("pattern", "webpack.config.*"))
	assert.Equal(t, []string{"**/*.json", "webpack.config.*"}, f.Patterns)

	assert.NoError(t, f.Validate())
	f.Debounce = -time.Second
	assert.Error(t, f.Validate())
}

func TestAbsPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x")
	got, err := AbsPath(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}
