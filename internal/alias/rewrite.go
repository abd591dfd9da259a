package alias

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// specifierSeparator separates the module name from the rest of a specifier.
// Specifiers always use forward slashes regardless of platform.
const specifierSeparator = "/"

// Rewriter rewrites aliased specifiers to filesystem paths. It only performs
// read-only existence checks and is safe for concurrent use.
type Rewriter struct {
	fs afero.Fs
}

// NewRewriter creates a Rewriter probing the given filesystem.
// A nil fs uses the OS filesystem.
func NewRewriter(fs afero.Fs) *Rewriter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Rewriter{fs: fs}
}

// Rewrite decides whether req.Specifier is rewritten using aliases. When the
// aliased candidate has no extension and does not exist as built, exts are
// probed in order and the first existing candidate+ext wins.
func (r *Rewriter) Rewrite(req Request, aliases Table, exts Extensions) Result {
	spec := req.Specifier
	if spec == "" || filepath.IsAbs(spec) {
		return PassThrough(spec)
	}

	moduleName, remainder, _ := strings.Cut(spec, specifierSeparator)
	target, ok := aliases.Lookup(moduleName)
	if !ok {
		return PassThrough(spec)
	}

	candidate := target
	if remainder != "" {
		candidate = filepath.Join(target, filepath.FromSlash(remainder))
	}

	if r.exists(candidate) {
		return RewriteTo(spec, candidate)
	}

	// An explicit extension is never completed.
	if hasExtension(candidate) {
		return PassThrough(spec)
	}

	for _, ext := range exts {
		if withExt := candidate + ext; r.exists(withExt) {
			return RewriteTo(spec, withExt)
		}
	}

	return PassThrough(spec)
}

// hasExtension reports whether the last path element carries an extension.
// A leading dot (".eslintrc") does not count as one.
func hasExtension(path string) bool {
	base := filepath.Base(path)
	return strings.LastIndex(base, ".") > 0
}

// exists treats any stat failure as "not found".
func (r *Rewriter) exists(path string) bool {
	ok, err := afero.Exists(r.fs, path)
	return err == nil && ok
}
