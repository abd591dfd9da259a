package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

//go:embed schema.cue
var settingsSchemaCUE []byte

// ValidationError is one invalid settings field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("settings validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates settings against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(settingsSchemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling settings schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Settings")),
	}, nil
}

// Validate checks cfg against #Settings plus the rules CUE cannot express
// per element.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	value := v.ctx.Encode(cfg)
	if value.Err() != nil {
		return fmt.Errorf("encoding settings: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs = append(errs, ValidationError{Field: fieldPath(e.Path()), Message: fmt.Sprintf(format, args...)})
		}
	}

	for i, o := range cfg.Overrides {
		if (o.Target == "") == !o.Skip {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("overrides.%d", i),
				Message: "exactly one of target or skip must be set",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// fieldPath renders a CUE error path relative to #Settings, the way the
// field is spelled in the settings file.
func fieldPath(path []string) string {
	if len(path) > 0 && path[0] == "#Settings" {
		path = path[1:]
	}
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, ".")
}

// ValidateFile loads and validates the settings file at path.
func (v *Validator) ValidateFile(path string) error {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading settings file: %w", err)
	}
	return v.Validate(cfg)
}
