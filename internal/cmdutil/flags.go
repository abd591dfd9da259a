// Package cmdutil provides shared command utilities. It centralizes flag
// group management, resolver construction and result rendering.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/opmodel/aliasresolve/internal/watch"
)

// ContextFlags holds the directory requests originate from
// (resolve, config show, config vet).
type ContextFlags struct {
	Dir string
}

// AddTo registers the context flag on the given cobra command.
func (f *ContextFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Dir, "context", "",
		"Directory requests originate from (default: working directory)")
}

// Abs returns the context directory as an absolute path.
func (f *ContextFlags) Abs() (string, error) {
	return AbsPath(f.Dir)
}

// WatchFlags holds flags for the watch command.
type WatchFlags struct {
	Requests string
	Dir      string
	Patterns []string
	Ignore   []string
	Debounce time.Duration
	Clear    bool
}

// AddTo registers the watch flags on the given cobra command.
func (f *WatchFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Requests, "requests", "",
		"Request file to resolve on every run (required)")
	cmd.Flags().StringVar(&f.Dir, "dir", "",
		"Directory tree to watch (default: working directory)")
	cmd.Flags().StringArrayVar(&f.Patterns, "pattern", nil,
		"Only changes matching this glob trigger a run (can be repeated)")
	cmd.Flags().StringArrayVar(&f.Ignore, "ignore", nil,
		"Ignore changes matching this glob (can be repeated)")
	cmd.Flags().DurationVar(&f.Debounce, "debounce", watch.DefaultDebounce,
		"Quiet period before a run")
	cmd.Flags().BoolVar(&f.Clear, "clear", false,
		"Clear the terminal before each run")
	_ = cmd.MarkFlagRequired("requests")
}

// Validate checks the flag values.
func (f *WatchFlags) Validate() error {
	if f.Debounce < 0 {
		return fmt.Errorf("--debounce must not be negative")
	}
	return nil
}

// AbsPath returns path made absolute, defaulting to the working directory.
func AbsPath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
