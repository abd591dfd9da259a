package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/cmdutil"
	"github.com/opmodel/aliasresolve/internal/host"
	"github.com/opmodel/aliasresolve/internal/output"
)

// NewServeCmd creates the serve command.
func NewServeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var concurrency int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Answer resolution requests over JSON lines on stdin/stdout",
		Long: `Serve resolution requests for a host build pipeline.

Each input line is a JSON object:
  {"id": 1, "specifier": "components/Button", "context": "/proj/src"}

Each reply is written on its own line in request order:
  {"id": 1, "specifier": "components/Button", "path": "/proj/src/components/Button",
   "rewritten": true, "configPath": "/proj/webpack.config.js", "kind": "rewritten"}

Failures are reported per request with kind config-not-found,
malformed-config, invalid-request or error; serving continues. A build
configuration is loaded at most once per run.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if concurrency <= 0 {
				concurrency = cfg.Settings.EffectiveConcurrency()
			}
			r, err := cmdutil.NewResolver(cfg)
			if err != nil {
				return err
			}

			output.Debug("serving", "concurrency", concurrency)
			err = host.Serve(c.Context(), c.InOrStdin(), c.OutOrStdout(), r, host.ServeOptions{Concurrency: concurrency})
			cmdutil.LogStats(r)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	c.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum in-flight requests (default: settings concurrency, or 8)")

	return c
}
