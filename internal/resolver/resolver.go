// Package resolver ties config location, loading, caching and rewriting into
// one object per build run.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"github.com/opmodel/aliasresolve/internal/alias"
	"github.com/opmodel/aliasresolve/internal/cache"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/locator"
)

// ConfigLocator finds the configuration path for a context directory.
type ConfigLocator interface {
	Locate(contextDir string) (string, error)
	Mode() locator.Mode
}

// ConfigLoader loads one configuration file.
type ConfigLoader interface {
	Load(ctx context.Context, path string) (*alias.Record, error)
}

// Options configures a Resolver.
type Options struct {
	// Fs is probed by the rewriter. Defaults to the OS filesystem.
	Fs afero.Fs

	// Locator and Loader are required.
	Locator ConfigLocator
	Loader  ConfigLoader

	// DefaultExtensions are probed when a configuration declares none.
	DefaultExtensions alias.Extensions

	// Overrides maps exact specifiers to decisions. Checked before Decide.
	Overrides map[string]Decision

	// Decide is consulted for specifiers without an override.
	Decide DecisionFunc

	// OnMissingConfig and OnMalformedConfig default to PolicyFail.
	OnMissingConfig   Policy
	OnMalformedConfig Policy

	// CacheRewrites memoizes rewritten results per (config path, specifier).
	CacheRewrites bool
}

type located struct {
	path string
	err  error
}

type rewriteKey struct {
	configPath string
	specifier  string
}

// Resolver resolves requests for one build run. It owns the configuration
// cache and the rewrite cache, so a new Resolver starts from a clean state.
// A Resolver is safe for concurrent use.
type Resolver struct {
	locator  ConfigLocator
	loader   ConfigLoader
	rewriter *alias.Rewriter
	configs  *cache.Cache

	defaultExts       alias.Extensions
	overrides         map[string]Decision
	decide            DecisionFunc
	onMissingConfig   Policy
	onMalformedConfig Policy
	cacheRewrites     bool

	locating singleflight.Group

	mu       sync.Mutex
	located  map[string]located
	rewrites map[rewriteKey]alias.Result
}

// New creates a Resolver.
func New(opts Options) (*Resolver, error) {
	if opts.Locator == nil {
		return nil, errors.New("resolver: locator is required")
	}
	if opts.Loader == nil {
		return nil, errors.New("resolver: loader is required")
	}

	onMissing, err := ParsePolicy(string(opts.OnMissingConfig))
	if err != nil {
		return nil, fmt.Errorf("onMissingConfig: %w", err)
	}
	onMalformed, err := ParsePolicy(string(opts.OnMalformedConfig))
	if err != nil {
		return nil, fmt.Errorf("onMalformedConfig: %w", err)
	}

	overrides := make(map[string]Decision, len(opts.Overrides))
	for spec, d := range opts.Overrides {
		overrides[spec] = d
	}

	return &Resolver{
		locator:           opts.Locator,
		loader:            opts.Loader,
		rewriter:          alias.NewRewriter(opts.Fs),
		configs:           cache.New(),
		defaultExts:       alias.Extensions{}.Append(opts.DefaultExtensions...),
		overrides:         overrides,
		decide:            opts.Decide,
		onMissingConfig:   onMissing,
		onMalformedConfig: onMalformed,
		cacheRewrites:     opts.CacheRewrites,
		located:           make(map[string]located),
		rewrites:          make(map[rewriteKey]alias.Result),
	}, nil
}

// Resolve resolves one request. On error the returned Result is a
// pass-through for req.Specifier; errors wrap ErrConfigNotFound or
// ErrMalformedConfig unless the matching policy is PolicyPassThrough.
func (r *Resolver) Resolve(ctx context.Context, req alias.Request) (alias.Result, error) {
	pass := alias.PassThrough(req.Specifier)
	if err := ctx.Err(); err != nil {
		return pass, err
	}

	switch d := r.decision(req); d.Action {
	case ActionReplace:
		return alias.RewriteTo(req.Specifier, d.Path), nil
	case ActionSkip:
		return pass, nil
	}

	configPath, err := r.locate(req.ContextDir)
	if err != nil {
		if errors.Is(err, oerrors.ErrConfigNotFound) && r.onMissingConfig == PolicyPassThrough {
			return pass, nil
		}
		return pass, err
	}
	pass.ConfigPath = configPath

	if req.Specifier == configPath {
		return pass, nil
	}

	key := rewriteKey{configPath: configPath, specifier: req.Specifier}
	if r.cacheRewrites {
		if res, ok := r.cachedRewrite(key); ok {
			return res, nil
		}
	}

	rec, err := r.load(ctx, configPath)
	if err != nil {
		if errors.Is(err, oerrors.ErrMalformedConfig) && r.onMalformedConfig == PolicyPassThrough {
			return pass, nil
		}
		return pass, err
	}

	exts := rec.Extensions
	if len(exts) == 0 {
		exts = r.defaultExts
	}

	res := r.rewriter.Rewrite(req, rec.Aliases, exts)
	res.ConfigPath = configPath
	if res.Rewritten && r.cacheRewrites {
		r.mu.Lock()
		r.rewrites[key] = res
		r.mu.Unlock()
	}
	return res, nil
}

// ConfigFor locates and loads the configuration used for contextDir.
// Policies are not applied.
func (r *Resolver) ConfigFor(ctx context.Context, contextDir string) (*alias.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := r.locate(contextDir)
	if err != nil {
		return nil, err
	}
	return r.load(ctx, path)
}

// Stats reports cache activity for the current run.
type Stats struct {
	Configs  int
	Failed   int
	Loads    int64
	Rewrites int
}

// Stats returns a snapshot of cache activity.
func (r *Resolver) Stats() Stats {
	r.mu.Lock()
	rewrites := len(r.rewrites)
	r.mu.Unlock()
	return Stats{
		Configs:  r.configs.Len(),
		Failed:   r.configs.Failed(),
		Loads:    r.configs.Loads(),
		Rewrites: rewrites,
	}
}

func (r *Resolver) decision(req alias.Request) Decision {
	if d, ok := r.overrides[req.Specifier]; ok && d.Action != ActionDefer {
		return d
	}
	if r.decide != nil {
		return r.decide(req)
	}
	return Defer()
}

// locate memoizes the located path: once per run in direct mode, once per
// context directory in upward mode.
func (r *Resolver) locate(contextDir string) (string, error) {
	key := ""
	if r.locator.Mode() == locator.ModeUpward {
		key = filepath.Clean(contextDir)
	}

	if l, ok := r.lookupLocated(key); ok {
		return l.path, l.err
	}
	// Lookups for one key share a single Locate; different keys run in parallel.
	v, _, _ := r.locating.Do(key, func() (any, error) {
		if l, ok := r.lookupLocated(key); ok {
			return l, nil
		}
		path, err := r.locator.Locate(contextDir)
		l := located{path: path, err: err}
		r.mu.Lock()
		r.located[key] = l
		r.mu.Unlock()
		return l, nil
	})
	l := v.(located)
	return l.path, l.err
}

func (r *Resolver) lookupLocated(key string) (located, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.located[key]
	return l, ok
}

// load goes through the config cache. The load is detached from ctx's
// cancellation because its outcome is shared and recorded for the whole run.
func (r *Resolver) load(ctx context.Context, path string) (*alias.Record, error) {
	loadCtx := context.WithoutCancel(ctx)
	return r.configs.GetOrCreate(path, func(p string) (*alias.Record, error) {
		return r.loader.Load(loadCtx, p)
	})
}

func (r *Resolver) cachedRewrite(key rewriteKey) (alias.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.rewrites[key]
	return res, ok
}
