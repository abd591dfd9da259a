// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/config"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/output"
)

// annotationSkipValidation marks commands that report settings problems
// themselves.
const annotationSkipValidation = "aliasresolve/skip-settings-validation"

// rootFlags holds the raw values of the persistent flags.
type rootFlags struct {
	settings     string
	config       []string
	findConfig   bool
	extensions   []string
	outputFormat string
	verbose      bool
	timestamps   bool
}

// NewRootCmd creates the root command for the aliasresolve CLI.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "aliasresolve",
		Short: "Resolve module specifiers through bundler alias tables",
		Long: `aliasresolve rewrites module specifiers using the alias table declared in a
bundler configuration file (webpack.config.js, JSON, YAML, TOML or CUE).

It can resolve specifiers directly, serve a host pipeline over JSON lines,
or re-run a request file whenever configuration files change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, &flags, cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.settings, "settings", "", "Path to settings file (env: "+config.SettingsEnv+")")
	pf.StringArrayVarP(&flags.config, "config", "c", nil, "Build configuration candidate; repeatable, may use ${VAR} (env: "+config.EnvConfig+")")
	pf.BoolVar(&flags.findConfig, "find-config", false, "Search upward from each request's context directory (env: "+config.EnvFindConfig+")")
	pf.StringSliceVar(&flags.extensions, "extensions", nil, "Default extension probe order when the config declares none (env: "+config.EnvExtensions+")")
	pf.StringVarP(&flags.outputFormat, "output", "o", "text", "Output format: "+strings.Join(output.ValidFormats(), ", "))
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewResolveCmd(cfg))
	rootCmd.AddCommand(NewServeCmd(cfg))
	rootCmd.AddCommand(NewWatchCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads settings, resolves effective values and sets up
// logging.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	format, ok := output.ParseOutputFormat(flags.outputFormat)
	if !ok {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: oerrors.NewValidationError(
				fmt.Sprintf("unknown output format %q", flags.outputFormat),
				"", "output",
				"Use one of: "+strings.Join(output.ValidFormats(), ", "),
			),
		}
	}
	cfg.Output = format
	cfg.Verbose = flags.verbose

	pathResult, err := config.ResolveSettingsPath(flags.settings, "")
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve settings path")
	}
	cfg.SettingsPath = pathResult.Path

	loader := config.NewLoader()
	settings, err := loader.Load(pathResult.Path)
	if err != nil {
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError}
	}
	cfg.Settings = settings

	// Logging is configured before anything else is logged so that debug
	// output from settings resolution honours --verbose.
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if settings.Log.Timestamps != nil {
		logCfg.Timestamps = settings.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	output.Debug("settings path resolved",
		"path", pathResult.Path,
		"source", pathResult.Source,
	)
	for source, shadowed := range pathResult.Shadowed {
		output.Debug("  shadowed by higher precedence", "shadowed_source", source, "shadowed_path", shadowed)
	}

	if cmd.Annotations[annotationSkipValidation] == "" {
		validator, err := config.NewValidator()
		if err != nil {
			return err
		}
		if err := validator.Validate(settings); err != nil {
			return &oerrors.ExitError{
				Err:  fmt.Errorf("%s: %w", pathResult.Path, err),
				Code: oerrors.ExitValidationError,
			}
		}
	}

	resolveFlags := config.Flags{
		Config:     flags.config,
		Extensions: flags.extensions,
	}
	if cmd.Flags().Changed("find-config") {
		resolveFlags.FindConfig = &flags.findConfig
	}

	resolved, err := config.ResolveAll(config.ResolveOptions{
		Flags:  resolveFlags,
		File:   settings,
		InFile: loader.InFile,
	})
	if err != nil {
		return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError}
	}
	cfg.Resolved = resolved
	config.LogResolvedValues(resolved.Values)

	return nil
}
