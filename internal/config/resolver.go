package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opmodel/aliasresolve/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceProject indicates a settings file found in the working directory.
	SourceProject ConfigSource = "project"
	// SourceConfig indicates value came from the settings file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables read by ResolveAll.
const (
	EnvConfig            = "ALIASRESOLVE_CONFIG"
	EnvFindConfig        = "ALIASRESOLVE_FIND_CONFIG"
	EnvExtensions        = "ALIASRESOLVE_EXTENSIONS"
	EnvOnMissingConfig   = "ALIASRESOLVE_ON_MISSING_CONFIG"
	EnvOnMalformedConfig = "ALIASRESOLVE_ON_MALFORMED_CONFIG"
	EnvNode              = "ALIASRESOLVE_NODE"
)

// ResolvedValue records how one setting was resolved.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// Flags holds command-line values. Nil or empty means "not given".
type Flags struct {
	Config     []string
	FindConfig *bool
	Extensions []string
}

// ResolveOptions are the inputs to ResolveAll.
type ResolveOptions struct {
	Flags Flags

	// File is the loaded settings file content.
	File *Config

	// InFile reports whether a key was present in the settings file. When
	// nil, non-zero File values count as present.
	InFile func(key string) bool

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Resolved holds the effective settings.
type Resolved struct {
	// Candidates are the user candidates followed by DefaultCandidates.
	Candidates        []string
	FindConfig        bool
	Extensions        []string
	OnMissingConfig   string
	OnMalformedConfig string
	NodeBinary        string

	// Values records the source of each resolved key.
	Values []ResolvedValue
}

// ResolveAll applies precedence flag > env > settings file > default to
// every overridable setting.
func ResolveAll(opts ResolveOptions) (*Resolved, error) {
	file := opts.File
	if file == nil {
		file = &Config{}
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	r := &resolution{lookup: lookup, inFile: opts.InFile}
	out := &Resolved{}

	userCandidates := r.listValue("config", opts.Flags.Config, EnvConfig, file.Config, nil)
	out.Candidates = Candidates(userCandidates)
	out.Extensions = r.listValue("extensions", opts.Flags.Extensions, EnvExtensions, file.Extensions, DefaultExtensions)
	out.OnMissingConfig = r.stringValue("onMissingConfig", "", EnvOnMissingConfig, file.OnMissingConfig, "fail")
	out.OnMalformedConfig = r.stringValue("onMalformedConfig", "", EnvOnMalformedConfig, file.OnMalformedConfig, "fail")
	out.NodeBinary = r.stringValue("node.binary", "", EnvNode, file.Node.Binary, "node")

	findConfig, err := r.boolValue("findConfig", opts.Flags.FindConfig, EnvFindConfig, file.FindConfig)
	if err != nil {
		return nil, err
	}
	out.FindConfig = findConfig

	out.Values = r.values
	return out, nil
}

type resolution struct {
	lookup func(string) (string, bool)
	inFile func(string) bool
	values []ResolvedValue
}

// pick records the first set layer as the winner and the rest as shadowed.
func (r *resolution) pick(key string, layers []layer, def any) any {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
	for _, l := range layers {
		if !l.set {
			continue
		}
		if rv.Source == "" {
			rv.Value, rv.Source = l.value, l.source
			continue
		}
		rv.Shadowed[l.source] = l.value
	}
	if rv.Source == "" {
		rv.Value, rv.Source = def, SourceDefault
	}
	r.values = append(r.values, rv)
	return rv.Value
}

type layer struct {
	source ConfigSource
	value  any
	set    bool
}

// inSettings reports whether a non-zero settings value was set by the file.
func (r *resolution) inSettings(key string, nonZero bool) bool {
	return nonZero && (r.inFile == nil || r.inFile(key))
}

func (r *resolution) env(name string) (string, bool) {
	v, ok := r.lookup(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (r *resolution) stringValue(key, flag, envName, fileValue, def string) string {
	envValue, envSet := r.env(envName)
	v := r.pick(key, []layer{
		{SourceFlag, flag, flag != ""},
		{SourceEnv, envValue, envSet},
		{SourceConfig, fileValue, r.inSettings(key, fileValue != "")},
	}, def)
	return v.(string)
}

func (r *resolution) listValue(key string, flag []string, envName string, fileValue, def []string) []string {
	envRaw, envSet := r.env(envName)
	v := r.pick(key, []layer{
		{SourceFlag, flag, len(flag) > 0},
		{SourceEnv, splitList(envRaw), envSet},
		{SourceConfig, fileValue, r.inSettings(key, len(fileValue) > 0)},
	}, def)
	return append([]string(nil), v.([]string)...)
}

func (r *resolution) boolValue(key string, flag *bool, envName string, fileValue bool) (bool, error) {
	var envValue, envSet bool
	if raw, ok := r.env(envName); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return false, fmt.Errorf("%s: invalid boolean %q: %w", envName, raw, err)
		}
		envValue, envSet = b, true
	}
	var flagValue bool
	if flag != nil {
		flagValue = *flag
	}
	v := r.pick(key, []layer{
		{SourceFlag, flagValue, flag != nil},
		{SourceEnv, envValue, envSet},
		{SourceConfig, fileValue, fileValue || r.inFile != nil && r.inFile(key)},
	}, false)
	return v.(bool), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LogResolvedValues logs each setting's resolution at debug level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("setting resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
