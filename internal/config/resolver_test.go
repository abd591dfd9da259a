package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func sourceOf(t *testing.T, r *Resolved, key string) ResolvedValue {
	t.Helper()
	for _, v := range r.Values {
		if v.Key == key {
			return v
		}
	}
	t.Fatalf("no resolved value for %q", key)
	return ResolvedValue{}
}

func TestResolveAll_Defaults(t *testing.T) {
	r, err := ResolveAll(ResolveOptions{LookupEnv: envMap(nil)})
	require.NoError(t, err)

	assert.Equal(t, DefaultCandidates, r.Candidates)
	assert.False(t, r.FindConfig)
	assert.Equal(t, DefaultExtensions, r.Extensions)
	assert.Equal(t, "fail", r.OnMissingConfig)
	assert.Equal(t, "fail", r.OnMalformedConfig)
	assert.Equal(t, "node", r.NodeBinary)

	for _, v := range r.Values {
		assert.Equal(t, SourceDefault, v.Source, v.Key)
	}
}

func TestResolveAll_Precedence(t *testing.T) {
	file := &Config{
		Config:          []string{"file.config.js"},
		FindConfig:      false,
		Extensions:      []string{".vue"},
		OnMissingConfig: "pass-through",
		Node:            NodeConfig{Binary: "/opt/node/bin/node"},
	}
	inFile := func(key string) bool {
		switch key {
		case "config", "findConfig", "extensions", "onMissingConfig", "node.binary":
			return true
		}
		return false
	}
	findConfig := true

	r, err := ResolveAll(ResolveOptions{
		Flags: Flags{
			Config:     []string{"flag.config.js"},
			FindConfig: &findConfig,
		},
		File:   file,
		InFile: inFile,
		LookupEnv: envMap(map[string]string{
			EnvConfig:            "env.config.js, other.config.js",
			EnvExtensions:        ".ts,.tsx",
			EnvOnMalformedConfig: "pass-through",
			EnvFindConfig:        "false",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "flag.config.js", r.Candidates[0])
	assert.Equal(t, DefaultCandidates[0], r.Candidates[1])
	cfgValue := sourceOf(t, r, "config")
	assert.Equal(t, SourceFlag, cfgValue.Source)
	assert.Equal(t, []string{"env.config.js", "other.config.js"}, cfgValue.Shadowed[SourceEnv])
	assert.Equal(t, []string{"file.config.js"}, cfgValue.Shadowed[SourceConfig])

	assert.True(t, r.FindConfig)
	findValue := sourceOf(t, r, "findConfig")
	assert.Equal(t, SourceFlag, findValue.Source)
	assert.Equal(t, false, findValue.Shadowed[SourceEnv])
	assert.Equal(t, false, findValue.Shadowed[SourceConfig])

	assert.Equal(t, []string{".ts", ".tsx"}, r.Extensions)
	assert.Equal(t, SourceEnv, sourceOf(t, r, "extensions").Source)

	assert.Equal(t, "pass-through", r.OnMissingConfig)
	assert.Equal(t, SourceConfig, sourceOf(t, r, "onMissingConfig").Source)

	assert.Equal(t, "pass-through", r.OnMalformedConfig)
	assert.Equal(t, SourceEnv, sourceOf(t, r, "onMalformedConfig").Source)

	assert.Equal(t, "/opt/node/bin/node", r.NodeBinary)
}

func TestResolveAll_FileFalseStillCounts(t *testing.T) {
	r, err := ResolveAll(ResolveOptions{
		File:      &Config{FindConfig: false},
		InFile:    func(key string) bool { return key == "findConfig" },
		LookupEnv: envMap(nil),
	})
	require.NoError(t, err)
	assert.False(t, r.FindConfig)
	assert.Equal(t, SourceConfig, sourceOf(t, r, "findConfig").Source)
}

func TestResolveAll_BlankEnvIgnored(t *testing.T) {
	r, err := ResolveAll(ResolveOptions{
		LookupEnv: envMap(map[string]string{EnvConfig: "  ", EnvNode: ""}),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultCandidates, r.Candidates)
	assert.Equal(t, "node", r.NodeBinary)
}

func TestResolveAll_InvalidBoolEnv(t *testing.T) {
	_, err := ResolveAll(ResolveOptions{
		LookupEnv: envMap(map[string]string{EnvFindConfig: "sometimes"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvFindConfig)
}

func TestResolveAll_ProcessEnv(t *testing.T) {
	t.Setenv(EnvExtensions, ".mjs")
	r, err := ResolveAll(ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{".mjs"}, r.Extensions)
}
