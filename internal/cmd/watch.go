package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/cmdutil"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/host"
	"github.com/opmodel/aliasresolve/internal/output"
	"github.com/opmodel/aliasresolve/internal/watch"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.WatchFlags

	c := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve a request file whenever files change",
		Long: `Resolve every request in a request file, then watch the project and
resolve them again after each batch of changes.

Each run starts with empty caches, so edits to the build configuration are
picked up on the next run. The request file is re-read on every run.

Request file lines are either a bare specifier or a JSON object
{"specifier": "...", "context": "..."}. Lines starting with # are ignored.

Examples:
  # Re-run on any change below the working directory
  aliasresolve watch --requests imports.txt

  # Only react to config changes
  aliasresolve watch --requests imports.txt --pattern 'webpack.config.*' --pattern '**/alias.config.*'`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runWatch(c, cfg, &flags)
		},
	}

	flags.AddTo(c)

	return c
}

func runWatch(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *cmdutil.WatchFlags) error {
	if err := flags.Validate(); err != nil {
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError}
	}
	dir, err := cmdutil.AbsPath(flags.Dir)
	if err != nil {
		return err
	}
	requests, err := cmdutil.AbsPath(flags.Requests)
	if err != nil {
		return err
	}

	run := func(ctx context.Context, changed []string) error {
		if flags.Clear {
			output.ClearScreen()
		}
		if len(changed) > 0 {
			output.Info("change detected", "files", strings.Join(changed, ", "))
		}
		err := resolveRequestFile(ctx, c, cfg, requests, dir)
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Printed {
			// Per-request failures were already reported.
			return nil
		}
		return err
	}

	// A missing request file or bad settings stop the command before
	// anything is watched.
	if err := run(c.Context(), nil); err != nil {
		return err
	}

	w, err := watch.New(watch.Options{
		Dir:      dir,
		Patterns: flags.Patterns,
		Ignore:   flags.Ignore,
		Debounce: flags.Debounce,
		OnChange: run,
	})
	if err != nil {
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError}
	}

	output.Info("watching for changes", "dir", dir)
	return w.Run(c.Context())
}

// resolveRequestFile runs one resolution pass over the request file with a
// fresh Resolver.
func resolveRequestFile(ctx context.Context, c *cobra.Command, cfg *cmdtypes.GlobalConfig, path, contextDir string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return oerrors.NewNotFoundError("request file not found", path, "Pass an existing file to --requests")
		}
		return fmt.Errorf("opening request file: %w", err)
	}
	reqs, err := host.ReadRequests(f, contextDir)
	_ = f.Close()
	if err != nil {
		return &oerrors.ExitError{Err: fmt.Errorf("%s: %w", path, err), Code: oerrors.ExitValidationError}
	}

	r, err := cmdutil.NewResolver(cfg)
	if err != nil {
		return err
	}
	replies, firstErr := cmdutil.ResolveAll(ctx, r, reqs)
	if err := cmdutil.RenderReplies(c.OutOrStdout(), cfg.Output, replies); err != nil {
		return err
	}
	cmdutil.LogStats(r)

	if !cfg.Output.Structured() {
		summary := fmt.Sprintf("%d request(s), %d failed", len(replies), cmdutil.CountFailed(replies))
		fmt.Fprintln(c.OutOrStdout(), output.StyleSummary.Render(summary))
	}

	return exitError(firstErr, true)
}
