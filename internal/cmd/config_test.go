package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/aliasresolve/internal/config"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

func TestConfigShow_JSON(t *testing.T) {
	p := newProject(t, defaultProjectConfig)

	out, err := execute(t, "", "-o", "json", "config", "show", "--config", p.config)
	require.NoError(t, err)

	var got configShowOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, p.config, got.ConfigPath)
	assert.Equal(t, "direct", got.Mode)
	assert.Equal(t, "config", got.ExtensionsSource)
	assert.Equal(t, []string{".js", ".ts"}, got.Extensions)
	assert.Equal(t, filepath.Join(p.dir, "src", "ui"), got.Aliases["@ui"])
	assert.False(t, got.MultiTarget)
	assert.Equal(t, p.config, got.Candidates[0])
}

func TestConfigShow_DefaultExtensions(t *testing.T) {
	p := newProject(t, `[{"resolve": {"alias": {"a": "./a"}}}, {"alias": {"b": "/abs/b"}}]`)

	out, err := execute(t, "", "-o", "yaml", "--extensions", ".mjs,.js", "config", "show", "--config", p.config)
	require.NoError(t, err)
	assert.Contains(t, out, "extensionsSource: default")
	assert.Contains(t, out, "multiTarget: true")
	assert.Contains(t, out, "- .mjs")
	assert.Contains(t, out, "b: /abs/b")
}

func TestConfigShow_Text(t *testing.T) {
	p := newProject(t, defaultProjectConfig)

	out, err := execute(t, "", "config", "show", "--config", p.config)
	require.NoError(t, err)
	assert.Contains(t, out, "Config:")
	assert.Contains(t, out, p.config)
	assert.Contains(t, out, "@ui")
}

func TestConfigShow_NotFound(t *testing.T) {
	_, err := execute(t, "", "config", "show", "--config", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}

func TestConfigVet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := newProject(t, defaultProjectConfig)
		out, err := execute(t, "", "config", "vet", "--config", p.config)
		require.NoError(t, err)
		assert.Contains(t, out, "Settings valid")
		assert.Contains(t, out, "Build configuration found")
		assert.Contains(t, out, "2 alias(es)")
	})

	t.Run("invalid settings are listed", func(t *testing.T) {
		p := newProject(t, defaultProjectConfig)
		settings := p.write(t, "settings.yaml", "concurrency: 500\n")

		out, err := execute(t, "", "--settings", settings, "config", "vet", "--settings-only")
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
		assert.Contains(t, out, "Settings invalid")
		assert.Contains(t, out, "concurrency")

		var exitErr *oerrors.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.True(t, exitErr.Printed)
	})

	t.Run("malformed build config", func(t *testing.T) {
		p := newProject(t, `{"entry": "./src/index.js"}`)
		out, err := execute(t, "", "config", "vet", "--config", p.config)
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
		assert.Contains(t, out, "Build configuration malformed")
	})

	t.Run("missing build config", func(t *testing.T) {
		out, err := execute(t, "", "config", "vet", "--config", filepath.Join(t.TempDir(), "x.json"))
		assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
		assert.Contains(t, out, "Build configuration not found")
	})
}

func TestConfigInit(t *testing.T) {
	out, err := execute(t, "", "config", "init")
	require.NoError(t, err)

	home := os.Getenv("HOME")
	path := filepath.Join(home, ".aliasresolve", "config.yaml")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettingsTemplate, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(os.Getenv("HOME"), ".aliasresolve", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("findConfig: true\n"), 0o600))

	require.Error(t, writeSettingsTemplate(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "findConfig: true\n", string(data))

	require.NoError(t, writeSettingsTemplate(path, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettingsTemplate, string(data))
}
