package locator

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

func newFS(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(fs, f, []byte("{}"), 0o644))
	}
	return fs
}

func TestLocate_Direct(t *testing.T) {
	fs := newFS(t,
		"/proj/webpack.config.js",
		"/proj/alias.config.json",
		"/proj/config/webpack.production.js",
	)

	t.Run("first existing candidate wins", func(t *testing.T) {
		l := New(Options{
			Fs:         fs,
			Candidates: []string{"missing.js", "alias.config.json", "webpack.config.js"},
			WorkDir:    "/proj",
			Env:        Environ{},
		})
		path, err := l.Locate("/proj/src/app")
		require.NoError(t, err)
		assert.Equal(t, "/proj/alias.config.json", path)
	})

	t.Run("template expanded from environment", func(t *testing.T) {
		l := New(Options{
			Fs:         fs,
			Candidates: []string{"config/webpack.${NODE_ENV}.js", "webpack.config.js"},
			WorkDir:    "/proj",
			Env:        Environ{"NODE_ENV": "production"},
		})
		path, err := l.Locate("")
		require.NoError(t, err)
		assert.Equal(t, "/proj/config/webpack.production.js", path)
	})

	t.Run("unset variable skips candidate", func(t *testing.T) {
		l := New(Options{
			Fs:         fs,
			Candidates: []string{"config/webpack.${NODE_ENV}.js", "", "webpack.config.js"},
			WorkDir:    "/proj",
			Env:        Environ{},
		})
		path, err := l.Locate("")
		require.NoError(t, err)
		assert.Equal(t, "/proj/webpack.config.js", path)
	})

	t.Run("absolute candidate", func(t *testing.T) {
		l := New(Options{
			Fs:         fs,
			Candidates: []string{"/proj/webpack.config.js"},
			WorkDir:    "/elsewhere",
			Env:        Environ{},
		})
		path, err := l.Locate("")
		require.NoError(t, err)
		assert.Equal(t, "/proj/webpack.config.js", path)
	})

	t.Run("directory does not count", func(t *testing.T) {
		l := New(Options{
			Fs:         fs,
			Candidates: []string{"config"},
			WorkDir:    "/proj",
			Env:        Environ{},
		})
		_, err := l.Locate("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConfigNotFound))
	})

	t.Run("direct mode ignores context directory", func(t *testing.T) {
		l := New(Options{
			Fs:         fs,
			Candidates: []string{"webpack.config.js"},
			WorkDir:    "/other",
			Env:        Environ{},
		})
		_, err := l.Locate("/proj/src/app")
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConfigNotFound))
		assert.Contains(t, err.Error(), "/other")
	})
}

func TestLocate_Upward(t *testing.T) {
	fs := newFS(t,
		"/proj/webpack.config.js",
		"/proj/packages/ui/alias.config.json",
		"/proj/src/app/component.js",
	)

	tests := []struct {
		name       string
		candidates []string
		contextDir string
		expected   string
	}{
		{
			name:       "found in ancestor",
			candidates: []string{"webpack.config.js"},
			contextDir: "/proj/src/app",
			expected:   "/proj/webpack.config.js",
		},
		{
			name:       "nearest candidate per declared order",
			candidates: []string{"alias.config.json", "webpack.config.js"},
			contextDir: "/proj/packages/ui/src",
			expected:   "/proj/packages/ui/alias.config.json",
		},
		{
			name:       "earlier candidate wins even when farther away",
			candidates: []string{"webpack.config.js", "alias.config.json"},
			contextDir: "/proj/packages/ui/src",
			expected:   "/proj/webpack.config.js",
		},
		{
			name:       "found in context directory itself",
			candidates: []string{"component.js"},
			contextDir: "/proj/src/app",
			expected:   "/proj/src/app/component.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(Options{Fs: fs, Candidates: tt.candidates, Mode: ModeUpward, Env: Environ{}})
			path, err := l.Locate(tt.contextDir)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}

	t.Run("stops at filesystem root", func(t *testing.T) {
		l := New(Options{Fs: fs, Candidates: []string{"alias.config.json"}, Mode: ModeUpward, Env: Environ{}})
		_, err := l.Locate("/proj/src/app")
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConfigNotFound))
	})
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeUpward, ModeFor(true))
	assert.Equal(t, ModeDirect, ModeFor(false))
	assert.Equal(t, "upward", ModeUpward.String())
	assert.Equal(t, "direct", ModeDirect.String())
}
