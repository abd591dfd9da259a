package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/cmdutil"
	"github.com/opmodel/aliasresolve/internal/config"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/loader"
	"github.com/opmodel/aliasresolve/internal/output"
	"github.com/opmodel/aliasresolve/internal/version"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		ctxFlags     cmdutil.ContextFlags
		settingsOnly bool
	)

	c := &cobra.Command{
		Use:   "vet",
		Short: "Validate settings and the build configuration",
		Long: `Validate the aliasresolve settings and the build configuration.

Checks performed:
  1. Settings file matches the settings schema
  2. A build configuration is found for the context directory
  3. The build configuration declares an alias table
  4. Node.js is available when the configuration is JavaScript

The settings path is resolved using precedence:
  --settings flag > ALIASRESOLVE_SETTINGS env > .aliasresolve.yaml > ~/.aliasresolve/config.yaml

Examples:
  # Validate settings and ./webpack.config.js
  aliasresolve config vet

  # Validate only the settings file
  aliasresolve config vet --settings-only`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipValidation: "true"},
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigVet(c, cfg, &ctxFlags, settingsOnly)
		},
	}

	ctxFlags.AddTo(c)
	c.Flags().BoolVar(&settingsOnly, "settings-only", false, "Only validate the settings file")

	return c
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig, ctxFlags *cmdutil.ContextFlags, settingsOnly bool) error {
	w := c.OutOrStdout()

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.Validate(cfg.Settings); err != nil {
		fmt.Fprintln(w, output.FormatCross("Settings invalid: "+cfg.SettingsPath))
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				fmt.Fprintf(w, "    %s: %s\n", v.Field, v.Message)
			}
		}
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError, Printed: true}
	}
	fmt.Fprintln(w, output.FormatVetCheck("Settings valid", settingsLabel(cfg.SettingsPath)))

	if settingsOnly {
		return nil
	}

	dir, err := ctxFlags.Abs()
	if err != nil {
		return err
	}
	r, err := cmdutil.NewResolver(cfg)
	if err != nil {
		return err
	}

	rec, err := r.ConfigFor(c.Context(), dir)
	if err != nil {
		switch {
		case errors.Is(err, oerrors.ErrConfigNotFound):
			fmt.Fprintln(w, output.FormatCross("Build configuration not found"))
		case errors.Is(err, oerrors.ErrMalformedConfig):
			fmt.Fprintln(w, output.FormatCross("Build configuration malformed"))
		default:
			fmt.Fprintln(w, output.FormatCross("Build configuration could not be loaded"))
		}
		output.Details(err.Error())
		return exitError(err, true)
	}
	fmt.Fprintln(w, output.FormatVetCheck("Build configuration found", rec.SourcePath))

	detail := fmt.Sprintf("%d alias(es)", len(rec.Aliases))
	if rec.MultiTarget {
		detail += ", multi-target"
	}
	fmt.Fprintln(w, output.FormatVetCheck("Alias table declared", detail))

	if loader.FormatFor(rec.SourcePath) == loader.FormatJavaScript {
		node := version.DetectNodeBinary(c.Context(), cfg.Resolved.NodeBinary)
		fmt.Fprintln(w, output.FormatVetCheck("Node.js available", node.Version))
	}
	return nil
}

func settingsLabel(path string) string {
	if path == "" {
		return "(defaults)"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (not present, using defaults)"
	}
	return path
}
