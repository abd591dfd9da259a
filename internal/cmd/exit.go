package cmd

import (
	"errors"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case oerrors.ExitSuccess:
		return "Success"
	case oerrors.ExitGeneralError:
		return "General Error"
	case oerrors.ExitValidationError:
		return "Validation Error"
	case oerrors.ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation), errors.Is(err, oerrors.ErrMalformedConfig):
		return oerrors.ExitValidationError
	case errors.Is(err, oerrors.ErrConfigNotFound), errors.Is(err, oerrors.ErrNotFound):
		return oerrors.ExitNotFound
	default:
		return oerrors.ExitGeneralError
	}
}

// exitError wraps err with the exit code ExitCodeFromError assigns it.
func exitError(err error, printed bool) error {
	if err == nil {
		return nil
	}
	return &oerrors.ExitError{Err: err, Code: ExitCodeFromError(err), Printed: printed}
}
