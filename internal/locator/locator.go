// Package locator finds the build configuration file for a resolution
// request from an ordered list of candidate names.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

// Mode selects how candidate names are turned into paths.
type Mode int

const (
	// ModeDirect resolves candidates against the working directory.
	ModeDirect Mode = iota
	// ModeUpward searches the context directory and its ancestors.
	ModeUpward
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeUpward:
		return "upward"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFor maps the findConfig setting onto a Mode.
func ModeFor(findConfig bool) Mode {
	if findConfig {
		return ModeUpward
	}
	return ModeDirect
}

// Options configures a Locator.
type Options struct {
	// Fs is the filesystem to search. Defaults to the OS filesystem.
	Fs afero.Fs

	// Candidates are file name templates tried in order.
	Candidates []string

	// Mode selects direct or upward discovery.
	Mode Mode

	// WorkDir anchors ModeDirect. Defaults to the process working directory.
	WorkDir string

	// Env supplies template variables. When nil, the process environment is
	// read on every Locate call.
	Env Environ
}

// Locator resolves the configuration path for a context directory.
type Locator struct {
	fs         afero.Fs
	candidates []string
	mode       Mode
	workDir    string
	env        Environ
}

// New creates a Locator.
func New(opts Options) *Locator {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Locator{
		fs:         fs,
		candidates: append([]string(nil), opts.Candidates...),
		mode:       opts.Mode,
		workDir:    opts.WorkDir,
		env:        opts.Env,
	}
}

// Mode returns the discovery mode.
func (l *Locator) Mode() Mode {
	return l.mode
}

// Locate returns the path of the first candidate that exists as a file.
// The returned error wraps ErrConfigNotFound when no candidate matches.
func (l *Locator) Locate(contextDir string) (string, error) {
	env := l.env
	if env == nil {
		env = EnvironFromOS()
	}

	workDir := l.workDir
	if workDir == "" && l.mode == ModeDirect {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		workDir = wd
	}

	for _, tmpl := range l.candidates {
		if tmpl == "" {
			continue
		}
		name, err := Expand(tmpl, env)
		if err != nil {
			if errors.Is(err, ErrUnsetVariable) {
				continue
			}
			return "", err
		}
		if name == "" {
			continue
		}

		var (
			path  string
			found bool
		)
		switch l.mode {
		case ModeUpward:
			path, found = l.findUp(name, contextDir)
		default:
			path = name
			if !filepath.IsAbs(path) {
				path = filepath.Join(workDir, path)
			}
			found = l.isFile(path)
		}
		if found {
			return filepath.Clean(path), nil
		}
	}

	searched := workDir
	if l.mode == ModeUpward {
		searched = contextDir
	}
	return "", oerrors.NewConfigNotFoundError(l.candidates, searched)
}

// findUp looks for name in dir and each of its ancestors.
func (l *Locator) findUp(name, dir string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, l.isFile(name)
	}
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, name)
		if l.isFile(path) {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// isFile reports whether path exists and is not a directory.
func (l *Locator) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}
