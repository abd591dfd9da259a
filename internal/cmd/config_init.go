package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/config"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		force   bool
		project bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file",
		Long: `Write a commented settings file with the default values.

By default the file is written to ~/.aliasresolve/config.yaml. With
--project it is written to .aliasresolve.yaml in the working directory.
The build configuration itself is never created or modified.

Examples:
  # Initialize user settings
  aliasresolve config init

  # Initialize project settings, overwriting an existing file
  aliasresolve config init --project --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipValidation: "true"},
		RunE: func(c *cobra.Command, args []string) error {
			path, err := initTarget(project)
			if err != nil {
				return err
			}
			if err := writeSettingsTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Settings written to "+path))
			fmt.Fprintln(c.OutOrStdout(), "Validate with: aliasresolve config vet --settings-only")
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")
	c.Flags().BoolVar(&project, "project", false, "Write "+config.ProjectSettingsFile+" in the working directory")

	return c
}

func initTarget(project bool) (string, error) {
	if project {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, config.ProjectSettingsFile), nil
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		return "", oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	return paths.SettingsFile, nil
}

func writeSettingsTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: &oerrors.DetailError{
				Type:     "validation failed",
				Message:  "settings file already exists",
				Location: path,
				Hint:     "Use --force to overwrite it.",
				Cause:    oerrors.ErrValidation,
			},
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.DefaultSettingsTemplate), 0o600); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
