package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/alias"
	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/cmdutil"
	"github.com/opmodel/aliasresolve/internal/host"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var ctxFlags cmdutil.ContextFlags

	c := &cobra.Command{
		Use:   "resolve SPECIFIER...",
		Short: "Resolve specifiers through the configured alias table",
		Long: `Resolve one or more module specifiers the way the build would.

Each specifier is matched against the alias table of the located build
configuration. Specifiers without a matching alias pass through unchanged.

Examples:
  # Resolve against ./webpack.config.js
  aliasresolve resolve components/Button utils/format

  # Search upward from a source directory for the config
  aliasresolve resolve --find-config --context src/pages components/Button

  # Machine-readable output
  aliasresolve resolve -o json @app/store`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c, cfg, &ctxFlags, args)
		},
	}

	ctxFlags.AddTo(c)

	return c
}

func runResolve(c *cobra.Command, cfg *cmdtypes.GlobalConfig, ctxFlags *cmdutil.ContextFlags, specifiers []string) error {
	dir, err := ctxFlags.Abs()
	if err != nil {
		return err
	}

	r, err := cmdutil.NewResolver(cfg)
	if err != nil {
		return err
	}

	reqs := make([]host.Request, len(specifiers))
	for i, spec := range specifiers {
		reqs[i] = host.Request{Request: alias.Request{Specifier: spec, ContextDir: dir}}
	}

	replies, firstErr := cmdutil.ResolveAll(c.Context(), r, reqs)
	if err := cmdutil.RenderReplies(c.OutOrStdout(), cfg.Output, replies); err != nil {
		return err
	}
	cmdutil.LogStats(r)

	return exitError(firstErr, true)
}
