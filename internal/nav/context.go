// Package nav owns one navigation project: it turns the host entry shape into entry
// identifiers, runs a full discovery scan and publishes the resulting snapshot to
// concurrent readers.
package nav

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/entrynav/internal/discovery"
	"git.home.luguber.info/inful/entrynav/internal/editlink"
	"git.home.luguber.info/inful/entrynav/internal/entries"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/observability"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
	"git.home.luguber.info/inful/entrynav/internal/render"
	"git.home.luguber.info/inful/entrynav/internal/title"
)

// Options is the resolved configuration of a project. Root and WorkDir are absolute.
type Options struct {
	Root        string
	WorkDir     string
	ProjectName string // defaults to the base name of Root

	Sources []string
	Ignore  []string
	Glob    discovery.GlobOptions

	TitleRules []*regexp.Regexp
	MainAlias  string
	TitleExt   string
	URLScheme  string

	PathResolver    discovery.PathResolver
	TitleFormatter  discovery.TitleFormatter
	EntriesOverride entries.EntriesOverride
}

// Option configures a Context.
type Option func(*Context)

// WithRecorder sets the metrics recorder for scans.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Context) {
		if r != nil {
			c.recorder = r
		}
	}
}

type project struct {
	opts  Options
	links *editlink.Resolver
}

type state struct {
	base     string
	entries  []string
	snapshot *discovery.Snapshot
}

// Context holds the latest snapshot of a project. Readers never block; Setup calls are
// serialized so at most one scan runs at a time.
type Context struct {
	mu       sync.Mutex
	recorder metrics.Recorder

	current atomic.Pointer[state]
	project atomic.Pointer[project]
}

// New creates a context. Until the first Setup, readers see an empty snapshot under "/".
func New(opts Options, options ...Option) *Context {
	c := &Context{recorder: metrics.NoopRecorder{}}
	for _, opt := range options {
		opt(c)
	}
	c.apply(opts)
	c.current.Store(&state{base: "/", entries: []string{}, snapshot: discovery.Empty()})
	return c
}

func (c *Context) apply(opts Options) {
	opts.Root = pathutil.Normalize(opts.Root)
	opts.WorkDir = pathutil.Normalize(opts.WorkDir)
	if opts.WorkDir == "" {
		opts.WorkDir = opts.Root
	}
	if opts.ProjectName == "" {
		opts.ProjectName = path.Base(opts.Root)
	}
	links := editlink.NewResolver(editlink.Options{
		Scheme:      opts.URLScheme,
		Root:        opts.Root,
		ProjectName: opts.ProjectName,
	})
	c.project.Store(&project{opts: opts, links: links})
}

// Reconfigure replaces the options used by subsequent setups. The published snapshot
// is kept until the next Setup.
func (c *Context) Reconfigure(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(opts)
}

// Setup rebuilds the entry identifiers from shape and runs a full scan under base
// ("/" when empty).
func (c *Context) Setup(base string, shape entries.Shape) error {
	return c.SetupContext(context.Background(), base, shape)
}

// SetupContext is Setup with a context carrying log correlation fields. The scan itself
// is not cancellable. On failure the previous snapshot stays published.
func (c *Context) SetupContext(ctx context.Context, base string, shape entries.Shape) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if base == "" {
		base = "/"
	}
	start := time.Now()
	p := c.project.Load()
	opts := p.opts

	ids, err := entries.NewResolver(entries.Options{
		Root:          opts.Root,
		WorkDir:       opts.WorkDir,
		IsRootWorkDir: opts.Root == opts.WorkDir,
		Override:      opts.EntriesOverride,
	}).Resolve(shape)
	if err != nil {
		c.recorder.IncScanOutcome(metrics.OutcomeFailed)
		err = ferrors.WrapError(err, ferrors.CategoryHook, "entries hook failed").Build()
		observability.ErrorContext(ctx, "Entry resolution failed", logfields.Error(err))
		return err
	}
	observability.DebugContext(ctx, "Entries resolved", logfields.Count(len(ids)), slog.Any("entries", ids))

	engine := discovery.NewEngine(discovery.Config{
		Root:    opts.Root,
		WorkDir: opts.WorkDir,
		Base:    base,
		Sources: opts.Sources,
		Ignore:  opts.Ignore,
		Glob:    opts.Glob,
	},
		discovery.WithPathResolver(opts.PathResolver),
		discovery.WithTitleFormatter(opts.TitleFormatter),
		discovery.WithTitleSource(title.NewResolver(title.Options{
			Rules:     opts.TitleRules,
			MainAlias: opts.MainAlias,
			Ext:       opts.TitleExt,
		})),
		discovery.WithLinkResolver(p.links),
	)

	snap, err := engine.Discover(ids)
	elapsed := time.Since(start)
	c.recorder.ObserveScanDuration(elapsed)
	if err != nil {
		c.recorder.IncScanOutcome(metrics.OutcomeFailed)
		observability.ErrorContext(ctx, "Page scan failed", logfields.Base(base), logfields.Error(err))
		return err
	}

	c.current.Store(&state{base: base, entries: ids, snapshot: snap})

	outcome := metrics.OutcomeSuccess
	if snap.Len() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	c.recorder.IncScanOutcome(outcome)
	c.recorder.SetPages(snap.Len(), snap.ActiveCount())

	ctx = observability.WithScanID(ctx, snap.ID)
	observability.InfoContext(ctx, "Pages discovered",
		logfields.Base(base),
		logfields.Count(snap.Len()),
		slog.Int(logfields.KeyActive, snap.ActiveCount()),
		logfields.Duration(elapsed))
	return nil
}

// Snapshot returns the latest published snapshot.
func (c *Context) Snapshot() *discovery.Snapshot { return c.current.Load().snapshot }

// Entries returns a copy of the entry identifiers of the latest setup.
func (c *Context) Entries() []string {
	return append([]string{}, c.current.Load().entries...)
}

// PublicPath returns the base of the latest setup.
func (c *Context) PublicPath() string { return c.current.Load().base }

// ProjectName returns the configured or derived project name.
func (c *Context) ProjectName() string { return c.project.Load().opts.ProjectName }

// Root returns the normalized project root.
func (c *Context) Root() string { return c.project.Load().opts.Root }

// ProjectURL returns the editor link of the project root.
func (c *Context) ProjectURL() string {
	p := c.project.Load()
	return p.links.Resolve(p.opts.Root)
}

// TemplateParams assembles the render parameters for the latest snapshot.
func (c *Context) TemplateParams() render.Params {
	return render.NewParams(c.ProjectName(), c.ProjectURL(), c.Snapshot())
}
