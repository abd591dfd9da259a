// Package alias holds the alias table model, the normalization of build
// configuration values into that model, and the specifier rewriter.
package alias

import (
	"sort"
)

// Table maps an alias key to its target path.
type Table map[string]string

// Keys returns the alias keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the target for an alias key.
func (t Table) Lookup(name string) (string, bool) {
	target, ok := t[name]
	return target, ok
}

// Merge copies other into t. Entries in other win on key collision.
func (t Table) Merge(other Table) {
	for k, v := range other {
		t[k] = v
	}
}

// Extensions is an ordered, deduplicated list of file extensions.
type Extensions []string

// Append adds extensions not already present, preserving first-seen order.
// Empty strings are dropped.
func (e Extensions) Append(exts ...string) Extensions {
	for _, ext := range exts {
		if ext == "" || e.Contains(ext) {
			continue
		}
		e = append(e, ext)
	}
	return e
}

// Contains reports whether ext is in the list.
func (e Extensions) Contains(ext string) bool {
	for _, have := range e {
		if have == ext {
			return true
		}
	}
	return false
}

// Record is the normalized result of loading one configuration file.
// A Record is immutable once published; Err marks a recorded failure.
type Record struct {
	// SourcePath is the configuration file the record was loaded from.
	SourcePath string

	// Aliases holds absolute alias targets.
	Aliases Table

	// Extensions is the probe order declared by the configuration.
	Extensions Extensions

	// MultiTarget is true when the configuration exported an array.
	MultiTarget bool

	// Err is the sticky failure recorded for SourcePath, if any.
	Err error
}

// Failed reports whether the record carries a failure.
func (r *Record) Failed() bool {
	return r != nil && r.Err != nil
}

// Request is one resolution event from the host pipeline.
type Request struct {
	Specifier  string `json:"specifier"`
	ContextDir string `json:"context"`
}

// Result is the outcome of resolving a Request.
type Result struct {
	// Specifier is the raw specifier from the request.
	Specifier string `json:"specifier"`

	// Path is the replacement path, or Specifier on pass-through.
	Path string `json:"path"`

	// Rewritten is false for pass-through.
	Rewritten bool `json:"rewritten"`

	// ConfigPath is the configuration consulted, when one was located.
	ConfigPath string `json:"configPath,omitempty"`
}

// PassThrough returns a Result leaving the specifier unchanged.
func PassThrough(specifier string) Result {
	return Result{Specifier: specifier, Path: specifier}
}

// RewriteTo returns a Result replacing the specifier with path.
func RewriteTo(specifier, path string) Result {
	return Result{Specifier: specifier, Path: path, Rewritten: true}
}
