// Package entries normalizes the entry configuration of a host build into the set of
// root-relative identifiers that are being compiled right now.
package entries

import (
	"log/slog"

	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
)

// EntriesOverride replaces the default entry normalization entirely. It returns identifiers
// in their final form, e.g. "/src/modules/foo".
type EntriesOverride interface {
	ResolveEntries() ([]string, error)
}

// OverrideFunc adapts a function to EntriesOverride.
type OverrideFunc func() ([]string, error)

func (f OverrideFunc) ResolveEntries() ([]string, error) { return f() }

// Options configures a Resolver. Root and WorkDir are absolute; IsRootWorkDir reports
// whether entry paths are already relative to Root rather than WorkDir.
type Options struct {
	Root          string
	WorkDir       string
	IsRootWorkDir bool
	Override      EntriesOverride
}

// Resolver turns a host entry Shape into entry identifiers.
type Resolver struct {
	opts Options
}

// NewResolver creates an entry resolver.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve returns the entry identifiers for shape. Normalization problems are logged and
// yield an empty set, which only disables active highlighting. Errors from the Override
// are returned to the caller.
func (r *Resolver) Resolve(shape Shape) ([]string, error) {
	if r.opts.Override != nil {
		ids, err := r.opts.Override.ResolveEntries()
		if err != nil {
			return nil, err
		}
		return append([]string{}, ids...), nil
	}

	paths, err := shape.Paths()
	if err != nil {
		slog.Warn("Ignoring malformed entry configuration", slog.String("shape", shape.Kind.String()), logfields.Error(err))
		return []string{}, nil
	}

	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		id, err := r.identifier(p)
		if err != nil {
			slog.Warn("Ignoring entry configuration", logfields.Path(p), logfields.Error(err))
			return []string{}, nil
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// identifier maps one entry path to "/<root-relative path without .html>".
func (r *Resolver) identifier(p string) (string, error) {
	abs := p
	if !pathutil.IsAbs(p) {
		base := r.opts.WorkDir
		if r.opts.IsRootWorkDir {
			base = r.opts.Root
		}
		abs = pathutil.Join(base, p)
	}
	rel, err := pathutil.Rel(r.opts.Root, abs)
	if err != nil {
		return "", err
	}
	return pathutil.EnsureLeadingSlash(pathutil.Normalize(pathutil.TrimPageExt(rel))), nil
}
