// Package cmdtypes provides shared types for the cmd package and the
// entry point.
package cmdtypes

import (
	"github.com/opmodel/aliasresolve/internal/config"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// Settings is the decoded settings file. Never nil after startup.
	Settings *config.Config

	// SettingsPath is the settings file that was consulted. It may not exist.
	SettingsPath string

	// Resolved holds the effective values after flag/env/file precedence.
	Resolved *config.Resolved

	Output  output.OutputFormat
	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitNotFound        = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
