package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect build configuration and settings",
		Long: `Inspect the build configuration aliasresolve would use and manage the
aliasresolve settings file.`,
	}

	c.AddCommand(NewConfigShowCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))
	c.AddCommand(NewConfigInitCmd(cfg))

	return c
}
