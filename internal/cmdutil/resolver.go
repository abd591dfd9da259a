package cmdutil

import (
	"context"
	"errors"

	"github.com/opmodel/aliasresolve/internal/cmdtypes"
	"github.com/opmodel/aliasresolve/internal/config"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
	"github.com/opmodel/aliasresolve/internal/host"
	"github.com/opmodel/aliasresolve/internal/loader"
	"github.com/opmodel/aliasresolve/internal/locator"
	"github.com/opmodel/aliasresolve/internal/output"
	"github.com/opmodel/aliasresolve/internal/resolver"
)

// NewResolver builds a Resolver from the effective settings. Every call
// returns a Resolver with empty caches.
func NewResolver(cfg *cmdtypes.GlobalConfig) (*resolver.Resolver, error) {
	res := cfg.Resolved
	loc := locator.New(locator.Options{
		Candidates: res.Candidates,
		Mode:       locator.ModeFor(res.FindConfig),
	})
	ld := loader.New(loader.Options{
		Evaluator: &loader.NodeEvaluator{Binary: res.NodeBinary},
	})

	r, err := resolver.New(resolver.Options{
		Locator:           loc,
		Loader:            ld,
		DefaultExtensions: config.Extensions(res.Extensions),
		Overrides:         cfg.Settings.OverrideDecisions(),
		OnMissingConfig:   resolver.Policy(res.OnMissingConfig),
		OnMalformedConfig: resolver.Policy(res.OnMalformedConfig),
		CacheRewrites:     cfg.Settings.CacheRewrites,
	})
	if err != nil {
		// Only policy values can fail here; they come from settings or env.
		return nil, &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError}
	}
	return r, nil
}

// ResolveAll resolves reqs in order with a shared Resolver, reporting each
// failure. It returns the first failure.
func ResolveAll(ctx context.Context, r *resolver.Resolver, reqs []host.Request) ([]host.Reply, error) {
	replies := make([]host.Reply, 0, len(reqs))
	var firstErr error
	for _, req := range reqs {
		res, err := r.Resolve(ctx, req.Request)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return replies, err
			}
			PrintResolveError(req, err)
			if firstErr == nil {
				firstErr = err
			}
		}
		replies = append(replies, host.NewReply(req.ID, res, err))
	}
	return replies, firstErr
}

// LogStats logs cache activity at debug level.
func LogStats(r *resolver.Resolver) {
	s := r.Stats()
	output.Debug("resolver stats", "configs", s.Configs, "failed", s.Failed, "loads", s.Loads, "rewrites", s.Rewrites)
}
