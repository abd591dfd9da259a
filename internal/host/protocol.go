package host

import (
	"encoding/json"
	"errors"

	"github.com/opmodel/aliasresolve/internal/alias"
	oerrors "github.com/opmodel/aliasresolve/internal/errors"
)

// Kind classifies a Reply.
type Kind string

const (
	KindRewritten       Kind = "rewritten"
	KindPassThrough     Kind = "pass-through"
	KindConfigNotFound  Kind = "config-not-found"
	KindMalformedConfig Kind = "malformed-config"
	KindInvalidRequest  Kind = "invalid-request"
	KindError           Kind = "error"
)

// Request is one line of input. ID is echoed back verbatim and may be any
// JSON value.
type Request struct {
	ID json.RawMessage `json:"id,omitempty"`
	alias.Request
}

// Reply is one line of output.
type Reply struct {
	ID         json.RawMessage `json:"id,omitempty" yaml:"-"`
	Specifier  string          `json:"specifier" yaml:"specifier"`
	Path       string          `json:"path" yaml:"path"`
	Rewritten  bool            `json:"rewritten" yaml:"rewritten"`
	ConfigPath string          `json:"configPath,omitempty" yaml:"configPath,omitempty"`
	Kind       Kind            `json:"kind" yaml:"kind"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReply builds the reply for a resolved request.
func NewReply(id json.RawMessage, res alias.Result, err error) Reply {
	r := Reply{
		ID:         id,
		Specifier:  res.Specifier,
		Path:       res.Path,
		Rewritten:  res.Rewritten,
		ConfigPath: res.ConfigPath,
		Kind:       KindOf(res, err),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// KindOf classifies a resolution outcome.
func KindOf(res alias.Result, err error) Kind {
	switch {
	case err == nil && res.Rewritten:
		return KindRewritten
	case err == nil:
		return KindPassThrough
	case errors.Is(err, oerrors.ErrConfigNotFound):
		return KindConfigNotFound
	case errors.Is(err, oerrors.ErrMalformedConfig):
		return KindMalformedConfig
	default:
		return KindError
	}
}

func invalidReply(err error) Reply {
	return Reply{Kind: KindInvalidRequest, Error: err.Error()}
}
