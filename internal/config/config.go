// Package config loads and resolves aliasresolve settings.
package config

import (
	"github.com/opmodel/aliasresolve/internal/alias"
	"github.com/opmodel/aliasresolve/internal/resolver"
)

// DefaultCandidates are the build configuration names tried, in order, after
// any user-supplied candidates.
var DefaultCandidates = []string{
	"alias.config.js",
	"alias.config.json",
	"alias.config.yaml",
	"alias.config.yml",
	"alias.config.toml",
	"alias.config.cue",
	"app.config.js",
	"webpack.config.js",
	"webpack.config.babel.js",
	"webpack.config.json",
}

// DefaultExtensions are probed when a build configuration declares none.
var DefaultExtensions = []string{".jsx", ".js", ".json", ".css", ".scss", ".less"}

// DefaultConcurrency bounds in-flight requests in serve mode.
const DefaultConcurrency = 8

// Override is a static resolution decision for one specifier.
type Override struct {
	// Specifier is matched exactly.
	Specifier string `json:"specifier" mapstructure:"specifier"`

	// Target replaces the specifier. Mutually exclusive with Skip.
	Target string `json:"target,omitempty" mapstructure:"target"`

	// Skip leaves the specifier unchanged.
	Skip bool `json:"skip,omitempty" mapstructure:"skip"`
}

// Decision converts the override into a resolver decision.
func (o Override) Decision() resolver.Decision {
	if o.Skip {
		return resolver.Skip()
	}
	return resolver.Replace(o.Target)
}

// NodeConfig configures JavaScript config evaluation.
type NodeConfig struct {
	// Binary is the node executable. Env: ALIASRESOLVE_NODE, Default: node.
	Binary string `json:"binary,omitempty" mapstructure:"binary"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config is the settings file content. Zero values mean "not set".
type Config struct {
	// Config lists build configuration candidates tried before the defaults.
	// A single string is accepted. Env: ALIASRESOLVE_CONFIG (comma-separated).
	Config []string `json:"config,omitempty" mapstructure:"config"`

	// FindConfig searches upward from each request's context directory
	// instead of using the working directory. Env: ALIASRESOLVE_FIND_CONFIG.
	FindConfig bool `json:"findConfig,omitempty" mapstructure:"findConfig"`

	// Extensions replaces DefaultExtensions. Env: ALIASRESOLVE_EXTENSIONS.
	Extensions []string `json:"extensions,omitempty" mapstructure:"extensions"`

	// OnMissingConfig is "fail" or "pass-through".
	OnMissingConfig string `json:"onMissingConfig,omitempty" mapstructure:"onMissingConfig"`

	// OnMalformedConfig is "fail" or "pass-through".
	OnMalformedConfig string `json:"onMalformedConfig,omitempty" mapstructure:"onMalformedConfig"`

	// Overrides short-circuit config-based resolution.
	Overrides []Override `json:"overrides,omitempty" mapstructure:"overrides"`

	// CacheRewrites memoizes rewritten specifiers within a run.
	CacheRewrites bool `json:"cacheRewrites,omitempty" mapstructure:"cacheRewrites"`

	// Concurrency bounds in-flight requests in serve mode.
	Concurrency int `json:"concurrency,omitempty" mapstructure:"concurrency"`

	Node NodeConfig `json:"node,omitempty" mapstructure:"node"`
	Log  LogConfig  `json:"log,omitempty" mapstructure:"log"`
}

// OverrideDecisions returns the overrides keyed by specifier. Later entries
// win on duplicates.
func (c *Config) OverrideDecisions() map[string]resolver.Decision {
	if len(c.Overrides) == 0 {
		return nil
	}
	out := make(map[string]resolver.Decision, len(c.Overrides))
	for _, o := range c.Overrides {
		out[o.Specifier] = o.Decision()
	}
	return out
}

// EffectiveConcurrency returns Concurrency or DefaultConcurrency.
func (c *Config) EffectiveConcurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return DefaultConcurrency
}

// Candidates returns user candidates followed by DefaultCandidates, without
// duplicates.
func Candidates(user []string) []string {
	seen := make(map[string]bool, len(user)+len(DefaultCandidates))
	out := make([]string, 0, len(user)+len(DefaultCandidates))
	for _, c := range append(append([]string(nil), user...), DefaultCandidates...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Extensions normalizes an extension list.
func Extensions(exts []string) alias.Extensions {
	return alias.Extensions{}.Append(exts...)
}
