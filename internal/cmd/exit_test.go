package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, oerrors.ExitSuccess},
		{"validation error", oerrors.ErrValidation, oerrors.ExitValidationError},
		{"malformed config", oerrors.NewMalformedConfigError("no alias table", "/p/webpack.config.js", nil), oerrors.ExitValidationError},
		{"config not found", oerrors.NewConfigNotFoundError([]string{"webpack.config.js"}, "/p"), oerrors.ExitNotFound},
		{"not found", oerrors.ErrNotFound, oerrors.ExitNotFound},
		{"wrapped not found", fmt.Errorf("opening: %w", oerrors.ErrNotFound), oerrors.ExitNotFound},
		{"explicit exit error wins", &oerrors.ExitError{Err: oerrors.ErrNotFound, Code: 9}, 9},
		{"unknown error", errors.New("boom"), oerrors.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(oerrors.ExitSuccess))
	assert.Equal(t, "Validation Error", ExitCodeName(oerrors.ExitValidationError))
	assert.Equal(t, "Not Found", ExitCodeName(oerrors.ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}

func TestExitError_Helper(t *testing.T) {
	assert.NoError(t, exitError(nil, true))

	err := exitError(oerrors.ErrMalformedConfig, true)
	var exitErr *oerrors.ExitError
	assert.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
	assert.True(t, exitErr.Printed)
}
