package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/alias"
	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/cmdutil"
	"github.com/opmodel/aliasresolve/internal/locator"
	"github.com/opmodel/aliasresolve/internal/output"
)

// configShowOutput is the structured form of config show.
type configShowOutput struct {
	ConfigPath       string            `json:"configPath" yaml:"configPath"`
	Mode             string            `json:"mode" yaml:"mode"`
	Candidates       []string          `json:"candidates" yaml:"candidates"`
	MultiTarget      bool              `json:"multiTarget" yaml:"multiTarget"`
	Extensions       []string          `json:"extensions" yaml:"extensions"`
	ExtensionsSource string            `json:"extensionsSource" yaml:"extensionsSource"`
	Aliases          map[string]string `json:"aliases" yaml:"aliases"`
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var ctxFlags cmdutil.ContextFlags

	c := &cobra.Command{
		Use:   "show",
		Short: "Show the build configuration and its alias table",
		Long: `Locate and load the build configuration for a context directory and
print its alias table with absolute targets.

Examples:
  # Show the config used from the working directory
  aliasresolve config show

  # Show the config found by searching upward from src/pages
  aliasresolve config show --find-config --context src/pages -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigShow(c, cfg, &ctxFlags)
		},
	}

	ctxFlags.AddTo(c)

	return c
}

func runConfigShow(c *cobra.Command, cfg *cmdtypes.GlobalConfig, ctxFlags *cmdutil.ContextFlags) error {
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
		return exitError(err, false)
	}

	out := configShowOutput{
		ConfigPath:       rec.SourcePath,
		Mode:             locator.ModeFor(cfg.Resolved.FindConfig).String(),
		Candidates:       cfg.Resolved.Candidates,
		MultiTarget:      rec.MultiTarget,
		Extensions:       rec.Extensions,
		ExtensionsSource: "config",
		Aliases:          rec.Aliases,
	}
	if len(rec.Extensions) == 0 {
		out.Extensions = cfg.Resolved.Extensions
		out.ExtensionsSource = "default"
	}
	if out.Aliases == nil {
		out.Aliases = alias.Table{}
	}

	if cfg.Output.Structured() {
		return output.WriteStructured(c.OutOrStdout(), cfg.Output, out)
	}
	return writeConfigShow(c.OutOrStdout(), out)
}

func writeConfigShow(w io.Writer, out configShowOutput) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Config:      %s\n", output.StyleNoun.Render(out.ConfigPath))
	fmt.Fprintf(&b, "Mode:        %s\n", out.Mode)
	fmt.Fprintf(&b, "Extensions:  %s %s\n", strings.Join(out.Extensions, " "), output.StyleDim.Render("("+out.ExtensionsSource+")"))
	if out.MultiTarget {
		fmt.Fprintf(&b, "Targets:     %s\n", output.StyleDim.Render("multiple (aliases merged, last wins)"))
	}
	b.WriteString("\n")
	if len(out.Aliases) == 0 {
		b.WriteString(output.StyleDim.Render("No aliases declared") + "\n")
	} else {
		b.WriteString(output.RenderAliasTable(out.Aliases) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
