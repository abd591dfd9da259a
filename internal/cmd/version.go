package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/output"
	"github.com/opmodel/aliasresolve/internal/version"
)

// versionOutput is the structured form of the version command.
type versionOutput struct {
	version.Info `yaml:",inline"`
	Node         version.NodeBinaryInfo `json:"node" yaml:"node"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show aliasresolve version information.

Displays:
  - aliasresolve version, commit, and build date
  - CUE SDK version (embedded in the binary)
  - Node.js binary used for JavaScript configurations`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			out := versionOutput{
				Info: version.GetInfo(),
				Node: version.DetectNodeBinary(c.Context(), cfg.Resolved.NodeBinary),
			}
			if cfg.Output.Structured() {
				return output.WriteStructured(c.OutOrStdout(), cfg.Output, out)
			}

			w := c.OutOrStdout()
			fmt.Fprintln(w, out.Info.String())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Node.js:")
			if !out.Node.Found {
				fmt.Fprintf(w, "  %s\n", out.Node.Message)
				return nil
			}
			fmt.Fprintf(w, "  Version: %s\n", out.Node.Version)
			fmt.Fprintf(w, "  Path:    %s\n", out.Node.Path)
			fmt.Fprintf(w, "  Status:  %s\n", out.Node.Message)
			return nil
		},
	}
}
