package resolver

import (
	"fmt"

	"github.com/opmodel/aliasresolve/internal/alias"
)

// Action is what an integrator decision asks the resolver to do.
type Action int

const (
	// ActionDefer falls through to config-based resolution.
	ActionDefer Action = iota
	// ActionSkip leaves the specifier unchanged.
	ActionSkip
	// ActionReplace rewrites the specifier to Decision.Path.
	ActionReplace
)

func (a Action) String() string {
	switch a {
	case ActionDefer:
		return "defer"
	case ActionSkip:
		return "skip"
	case ActionReplace:
		return "replace"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision short-circuits config-based resolution for one specifier.
type Decision struct {
	Action Action
	Path   string
}

// Defer returns a Decision that falls through to config-based resolution.
func Defer() Decision { return Decision{Action: ActionDefer} }

// Skip returns a Decision that leaves the specifier unchanged.
func Skip() Decision { return Decision{Action: ActionSkip} }

// Replace returns a Decision rewriting the specifier to path.
func Replace(path string) Decision { return Decision{Action: ActionReplace, Path: path} }

// DecisionFunc decides per request before any configuration is consulted.
type DecisionFunc func(req alias.Request) Decision

// Policy decides what a configuration failure means for a request.
type Policy string

const (
	// PolicyFail returns the failure to the caller.
	PolicyFail Policy = "fail"
	// PolicyPassThrough turns the failure into a pass-through result.
	PolicyPassThrough Policy = "pass-through"
)

// ParsePolicy parses a policy name. The empty string means PolicyFail.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicyPassThrough:
		return PolicyPassThrough, nil
	default:
		return "", fmt.Errorf("unknown policy %q (valid: %s, %s)", s, PolicyFail, PolicyPassThrough)
	}
}
