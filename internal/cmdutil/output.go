package cmdutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/opmodel/aliasresolve/internal/alias"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/host"
	"github.com/opmodel/aliasresolve/internal/output"
)

// PrintResolveError prints a failed request in a user-friendly format. Detail
// errors are printed as plain text to stderr for readable multi-line output.
func PrintResolveError(req host.Request, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("resolving %s: %s", req.Specifier, detail.Type), "context", req.ContextDir)
		output.Details(err.Error())
		return
	}
	output.Error("resolving "+req.Specifier, "context", req.ContextDir, "error", err)
}

// RenderReplies writes replies in the requested format.
func RenderReplies(w io.Writer, format output.OutputFormat, replies []host.Reply) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		if replies == nil {
			replies = []host.Reply{}
		}
		return output.WriteStructured(w, format, replies)
	case output.FormatTable:
		results := make([]alias.Result, len(replies))
		statuses := make([]string, len(replies))
		for i, rep := range replies {
			results[i] = alias.Result{Specifier: rep.Specifier, Path: rep.Path, Rewritten: rep.Rewritten}
			statuses[i] = string(rep.Kind)
		}
		_, err := fmt.Fprintln(w, output.RenderResultsTable(results, statuses))
		return err
	default:
		for _, rep := range replies {
			if _, err := fmt.Fprintln(w, output.FormatRewrite(rep.Specifier, rep.Path, string(rep.Kind))); err != nil {
				return err
			}
		}
		return nil
	}
}

// CountFailed returns how many replies carry an error.
func CountFailed(replies []host.Reply) int {
	n := 0
	for _, rep := range replies {
		if rep.Error != "" {
			n++
		}
	}
	return n
}
