// Package errors provides sentinel errors for aliasresolve.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrConfigNotFound indicates no candidate build configuration file exists.
	ErrConfigNotFound = errors.New("config not found")

	// ErrMalformedConfig indicates a build configuration file exists but
	// declares neither an alias table nor a multi-target array.
	ErrMalformedConfig = errors.New("malformed config")

	// ErrValidation indicates a settings validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file or request source was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError is an error with enough structure to tell the user where it
// happened and what to try next. errors.Is reaches the sentinel through Cause.
type DetailError struct {
	Type     string // category, printed first
	Message  string
	Location string // file path, if any
	Field    string // settings field, if any

	// Context is printed as "key: value" lines in key order.
	Context map[string]string

	Hint  string
	Cause error
}

func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)

	lines := make([][2]string, 0, len(e.Context)+2)
	if e.Location != "" {
		lines = append(lines, [2]string{"Location", e.Location})
	}
	if e.Field != "" {
		lines = append(lines, [2]string{"Field", e.Field})
	}
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		lines = append(lines, [2]string{k, e.Context[k]})
	}
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s: %s\n", l[0], l[1])
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Cause != nil && !isSentinel(e.Cause) {
		fmt.Fprintf(&b, "  Cause: %s\n", e.Cause)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error {
	return e.Cause
}

func isSentinel(err error) bool {
	switch err {
	case ErrConfigNotFound, ErrMalformedConfig, ErrValidation, ErrNotFound:
		return true
	}
	return false
}

// classified ties an underlying failure to a sentinel. Its text is the
// underlying failure alone.
type classified struct {
	sentinel error
	err      error
}

func (c *classified) Error() string   { return c.err.Error() }
func (c *classified) Unwrap() []error { return []error{c.sentinel, c.err} }

// NewConfigNotFoundError reports that none of the candidates resolved.
func NewConfigNotFoundError(candidates []string, searchedFrom string) error {
	ctx := map[string]string{"Candidates": strings.Join(candidates, ", ")}
	if searchedFrom != "" {
		ctx["Searched from"] = searchedFrom
	}
	return &DetailError{
		Type:    "config not found",
		Message: "cannot find any of the candidate configuration files",
		Context: ctx,
		Hint:    "Pass --config to name the build configuration, or --find-config to search upward",
		Cause:   ErrConfigNotFound,
	}
}

// NewMalformedConfigError reports a configuration file without a usable alias table.
func NewMalformedConfigError(message, location string, cause error) error {
	d := &DetailError{
		Type:     "malformed config",
		Message:  message,
		Location: location,
		Hint:     "Declare aliases under 'alias' or 'resolve.alias', or export an array of configurations",
		Cause:    ErrMalformedConfig,
	}
	if cause != nil {
		d.Cause = &classified{sentinel: ErrMalformedConfig, err: cause}
	}
	return d
}

// NewValidationError reports an invalid settings value.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{Type: "validation failed", Message: message, Location: location,
		Field: field, Hint: hint, Cause: ErrValidation}
}

// NewNotFoundError reports a missing file other than a build configuration.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{Type: "not found", Message: message, Location: location,
		Hint: hint, Cause: ErrNotFound}
}

// Wrap prefixes sentinel with message, keeping it matchable by errors.Is.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// Process exit codes.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitValidationError = 2
	ExitNotFound        = 5
)

// ExitError carries a process exit code for an error returned by a command.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported Err to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
