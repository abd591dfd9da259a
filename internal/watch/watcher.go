// Package watch re-runs a callback after debounced filesystem changes. Each
// callback invocation is one build run.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/opmodel/aliasresolve/internal/output"
)

// DefaultDebounce is the quiet period after the last event before a run.
const DefaultDebounce = 300 * time.Millisecond

// defaultIgnores are never watched. Build output and dependency trees change
// during every build and would retrigger runs endlessly.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/dist/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

// Options configures a Watcher.
type Options struct {
	// Dir is the watched tree. Defaults to the working directory.
	Dir string

	// Patterns select which changed files trigger a run (doublestar globs,
	// relative to Dir). Empty means every non-ignored file.
	Patterns []string

	// Ignore adds to the default ignore patterns.
	Ignore []string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// OnChange receives the changed paths, relative to Dir and sorted.
	// Errors are logged and do not stop the watcher.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher watches a directory tree.
type Watcher struct {
	opts    Options
	dir     string
	ignores []string
	fsw     *fsnotify.Watcher
}

// New validates the patterns and registers every non-ignored directory
// under opts.Dir.
func New(opts Options) (*Watcher, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving watch directory: %w", err)
	}

	for _, pat := range slices.Concat(opts.Patterns, opts.Ignore) {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid watch pattern %q", pat)
		}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		opts:    opts,
		dir:     dir,
		ignores: slices.Concat(defaultIgnores, opts.Ignore),
		fsw:     fsw,
	}
	if err := w.addTree(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is canceled. Events arriving while OnChange
// runs are collected for the next run.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	pending := map[string]struct{}{}
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			rel, ok := w.relevant(evt.Name)
			if !ok {
				continue
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						output.Warn("watching new directory", "path", evt.Name, "err", err)
					}
				}
			}
			if !w.matches(rel) {
				continue
			}
			pending[rel] = struct{}{}
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				output.Warn("file watcher overflowed, some changes may be missed")
				continue
			}
			output.Warn("file watcher error", "err", err)

		case <-timer.C:
			if len(pending) == 0 || w.opts.OnChange == nil {
				continue
			}
			changed := make([]string, 0, len(pending))
			for rel := range pending {
				changed = append(changed, rel)
			}
			clear(pending)
			slices.Sort(changed)

			if err := w.opts.OnChange(ctx, changed); err != nil {
				output.Error("run failed", "err", err)
			}
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			output.Debug("skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.dir {
			if rel, ok := w.relevant(path); !ok || w.ignored(rel+"/") {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// relevant returns path relative to the watched directory, or false when the
// path is outside it or ignored.
func (w *Watcher) relevant(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if w.ignored(rel) {
		return "", false
	}
	return rel, true
}

func (w *Watcher) ignored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matches(rel string) bool {
	return len(w.opts.Patterns) == 0 || matchAny(w.opts.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
