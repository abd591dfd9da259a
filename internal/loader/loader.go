// Package loader reads build configuration files and normalizes them into
// alias records.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/opmodel/aliasresolve/internal/alias"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

// DefaultMaxFileSize bounds how much of a configuration file is read.
const DefaultMaxFileSize int64 = 4 << 20

// Options configures a Loader.
type Options struct {
	// Fs is the filesystem data formats are read from. Defaults to the OS
	// filesystem. JavaScript modules are always evaluated from disk.
	Fs afero.Fs

	// Evaluator runs JavaScript configuration modules. Defaults to a
	// NodeEvaluator using node from PATH.
	Evaluator Evaluator

	// MaxFileSize overrides DefaultMaxFileSize when positive.
	MaxFileSize int64
}

// Loader loads configuration files. It never writes to the filesystem.
type Loader struct {
	fs          afero.Fs
	eval        Evaluator
	maxFileSize int64
}

// New creates a Loader.
func New(opts Options) *Loader {
	l := &Loader{
		fs:          opts.Fs,
		eval:        opts.Evaluator,
		maxFileSize: opts.MaxFileSize,
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.eval == nil {
		l.eval = &NodeEvaluator{}
	}
	if l.maxFileSize <= 0 {
		l.maxFileSize = DefaultMaxFileSize
	}
	return l
}

// Load reads path and returns its normalized record. Relative alias targets
// are resolved against the directory containing path.
//
// Decoding, evaluation and shape failures wrap ErrMalformedConfig; I/O
// failures, cancellation and a missing Node.js binary do not.
func (l *Loader) Load(ctx context.Context, path string) (*alias.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load config canceled: %w", err)
	}

	value, err := l.decode(ctx, path)
	if err != nil {
		return nil, err
	}

	n, err := alias.Normalize(value)
	if err != nil {
		return nil, oerrors.NewMalformedConfigError(
			"the resolved config file doesn't contain a resolve configuration", path, err)
	}

	base := filepath.Dir(path)
	aliases := make(alias.Table, len(n.Aliases))
	for name, target := range n.Aliases {
		aliases[name] = absTarget(base, target)
	}

	return &alias.Record{
		SourcePath:  path,
		Aliases:     aliases,
		Extensions:  n.Extensions,
		MultiTarget: n.MultiTarget,
	}, nil
}

func (l *Loader) decode(ctx context.Context, path string) (any, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if info.Size() > l.maxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, info.Size(), l.maxFileSize)
	}

	format := FormatFor(path)
	if format == FormatJavaScript {
		value, err := l.eval.Evaluate(ctx, path)
		switch {
		case err == nil:
			return value, nil
		case errors.Is(err, ErrNodeNotFound), ctx.Err() != nil:
			return nil, fmt.Errorf("loading %s config: %w", format, err)
		default:
			return nil, oerrors.NewMalformedConfigError("cannot evaluate javascript config", path, err)
		}
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	value, err := decodeData(format, data, path)
	if err != nil {
		return nil, oerrors.NewMalformedConfigError(fmt.Sprintf("cannot decode %s config", format), path, err)
	}
	return value, nil
}

func absTarget(base, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(base, filepath.FromSlash(target))
}
