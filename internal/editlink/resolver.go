// Package editlink turns filesystem paths into links that open a code editor.
package editlink

import (
	"log/slog"

	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
)

// Options configures a Resolver. Root is the project root that relative forms are
// computed against; it is also the path that yields a project-level link.
type Options struct {
	Scheme      string
	Root        string
	ProjectName string
}

// Resolver resolves editor URLs through a chain of scheme builders.
type Resolver struct {
	raw         string
	scheme      Scheme
	root        string
	projectName string
	chain       *BuilderChain
}

// NewResolver creates a resolver with the standard builder chain.
func NewResolver(opts Options) *Resolver {
	chain := NewBuilderChain().
		Add(NewVSCodeBuilder()).
		Add(NewVSCodeInsidersBuilder()).
		Add(NewJetBrainsBuilder()).
		Add(NewTemplateBuilder())
	return NewResolverWithChain(opts, chain)
}

// NewResolverWithChain creates a resolver with a custom builder chain.
func NewResolverWithChain(opts Options, chain *BuilderChain) *Resolver {
	return &Resolver{
		raw:         opts.Scheme,
		scheme:      ParseScheme(opts.Scheme),
		root:        pathutil.Normalize(opts.Root),
		projectName: opts.ProjectName,
		chain:       chain,
	}
}

// Scheme returns the classified scheme.
func (r *Resolver) Scheme() Scheme { return r.scheme }

// Resolve returns the editor URL for p, or p unchanged when no scheme is configured.
func (r *Resolver) Resolve(p string) string {
	if r.scheme == SchemeNone {
		return p
	}
	ctx := LinkContext{
		Path:        p,
		Root:        r.root,
		ProjectName: r.projectName,
		Raw:         r.raw,
		Scheme:      r.scheme,
	}
	if pathutil.IsAbs(p) {
		ctx.Absolute = pathutil.Normalize(p)
		rel, err := pathutil.Rel(r.root, ctx.Absolute)
		if err != nil {
			slog.Debug("Editor link outside project root", logfields.Path(p), logfields.Error(err))
			rel = ctx.Absolute
		}
		ctx.Relative = rel
	} else {
		ctx.Relative = pathutil.Normalize(p)
		ctx.Absolute = pathutil.Join(r.root, p)
	}
	if url, ok := r.chain.Build(ctx); ok {
		return url
	}
	return p
}
