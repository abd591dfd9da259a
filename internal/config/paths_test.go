package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~", home},
		{"~/settings.yaml", filepath.Join(home, "settings.yaml")},
		{"~other/settings.yaml", "~other/settings.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSettingsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	defaultPath := filepath.Join(home, ".aliasresolve", "config.yaml")

	workDir := t.TempDir()

	t.Run("default", func(t *testing.T) {
		t.Setenv(SettingsEnv, "")
		got, err := ResolveSettingsPath("", workDir)
		require.NoError(t, err)
		assert.Equal(t, defaultPath, got.Path)
		assert.Equal(t, SourceDefault, got.Source)
		assert.Empty(t, got.Shadowed)
	})

	t.Run("project file shadows default", func(t *testing.T) {
		t.Setenv(SettingsEnv, "")
		project := filepath.Join(workDir, ".aliasresolve.yml")
		require.NoError(t, os.WriteFile(project, []byte("findConfig: true\n"), 0o644))
		t.Cleanup(func() { os.Remove(project) })

		got, err := ResolveSettingsPath("", workDir)
		require.NoError(t, err)
		assert.Equal(t, project, got.Path)
		assert.Equal(t, SourceProject, got.Source)
		assert.Equal(t, defaultPath, got.Shadowed[SourceDefault])
	})

	t.Run("env shadows project and default", func(t *testing.T) {
		t.Setenv(SettingsEnv, "/env/settings.yaml")
		got, err := ResolveSettingsPath("", workDir)
		require.NoError(t, err)
		assert.Equal(t, "/env/settings.yaml", got.Path)
		assert.Equal(t, SourceEnv, got.Source)
	})

	t.Run("flag wins and expands home", func(t *testing.T) {
		t.Setenv(SettingsEnv, "/env/settings.yaml")
		got, err := ResolveSettingsPath("~/custom.yaml", workDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "custom.yaml"), got.Path)
		assert.Equal(t, SourceFlag, got.Source)
		assert.Equal(t, "/env/settings.yaml", got.Shadowed[SourceEnv])
		assert.Equal(t, defaultPath, got.Shadowed[SourceDefault])
	})
}
