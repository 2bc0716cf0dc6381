// Package discovery scans a source tree for entry files and builds the page registry:
// public URL, title, sibling editor links and the active flag for every entry.
package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/entrynav/internal/discovery/errors"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
)

// DefaultIgnore excludes dependency directories from source globs.
var DefaultIgnore = []string{"**/node_modules/**"}

// Config is the immutable scan configuration. Root and WorkDir are absolute.
type Config struct {
	Root    string   // Project root; relative file paths and entry identifiers use it
	WorkDir string   // Directory the source globs are evaluated in
	Base    string   // Public path prefix; "/" when empty
	Sources []string // Entry file globs, relative to WorkDir
	Ignore  []string // Extra ignore globs, relative to WorkDir
	Glob    GlobOptions
}

// Engine builds page snapshots.
type Engine struct {
	root    string
	workDir string
	base    string
	sources []string
	ignore  []string
	glob    GlobOptions

	paths    PathResolver
	titles   TitleSource
	format   TitleFormatter
	links    LinkResolver
	siblings func(entryFile string) ([]string, error)
	now      func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPathResolver replaces the default page path hook.
func WithPathResolver(r PathResolver) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.paths = r
		}
	}
}

// WithTitleFormatter replaces the default title formatting hook.
func WithTitleFormatter(f TitleFormatter) EngineOption {
	return func(e *Engine) {
		if f != nil {
			e.format = f
		}
	}
}

// WithTitleSource sets the raw title extractor.
func WithTitleSource(s TitleSource) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.titles = s
		}
	}
}

// WithLinkResolver sets the editor URL resolver used for sibling files.
func WithLinkResolver(l LinkResolver) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.links = l
		}
	}
}

// NewEngine creates a discovery engine.
func NewEngine(cfg Config, opts ...EngineOption) *Engine {
	base := cfg.Base
	if base == "" {
		base = "/"
	}
	e := &Engine{
		root:     pathutil.Normalize(cfg.Root),
		workDir:  pathutil.Normalize(cfg.WorkDir),
		base:     base,
		sources:  append([]string(nil), cfg.Sources...),
		ignore:   append(append([]string(nil), DefaultIgnore...), cfg.Ignore...),
		glob:     cfg.Glob,
		paths:    DefaultPathResolver{},
		titles:   noTitle{},
		format:   DefaultTitleFormatter{},
		links:    identityLinks{},
		siblings: func(entryFile string) ([]string, error) { return ListSiblings(entryFile, cfg.Glob) },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Base returns the public path prefix.
func (e *Engine) Base() string { return e.base }

// Discover runs a full scan. entryIDs are the identifiers of the pages being built
// right now; pages whose path they end with are marked active. Hook failures abort
// the scan.
func (e *Engine) Discover(entryIDs []string) (*Snapshot, error) {
	id := uuid.NewString()
	if len(e.sources) == 0 {
		slog.Debug("Source is empty, nothing to discover", logfields.ScanID(id))
		return newSnapshot(id, e.now(), nil), nil
	}

	files, err := e.expand()
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(files))
	index := make(map[string]int, len(files))
	for _, file := range files {
		page, err := e.buildPage(file, entryIDs)
		if err != nil {
			return nil, err
		}
		if i, dup := index[page.Key]; dup {
			pages[i] = page
			continue
		}
		index[page.Key] = len(pages)
		pages = append(pages, page)
		slog.Debug("Discovered page",
			logfields.ScanID(id),
			logfields.File(page.RelativePath),
			logfields.Page(page.Entry),
			logfields.Active(page.Active))
	}

	return newSnapshot(id, e.now(), partitionActive(pages)), nil
}

// expand evaluates every source glob in order and returns absolute, deduplicated files.
func (e *Engine) expand() ([]string, error) {
	fsys := os.DirFS(e.workDir)
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range e.sources {
		if !doublestar.ValidatePattern(pattern) {
			return nil, ferrors.DiscoveryError("cannot expand source pattern").
				WithCause(fmt.Errorf("%w: %s", derrors.ErrInvalidPattern, pattern)).
				WithContext("pattern", pattern).
				Build()
		}
		matches, err := doublestar.Glob(fsys, e.glob.pattern(pattern), e.glob.doublestar()...)
		if err != nil {
			return nil, ferrors.WrapError(
				fmt.Errorf("%w: %s in %s: %w", derrors.ErrGlobFailed, pattern, e.workDir, err),
				ferrors.CategoryFileSystem, "cannot expand source pattern").
				WithContext("pattern", pattern).
				Build()
		}
		for _, m := range matches {
			if !e.glob.visible(pattern, m) || e.ignored(m) {
				continue
			}
			abs := pathutil.Join(e.workDir, m)
			if _, dup := seen[abs]; dup {
				continue
			}
			seen[abs] = struct{}{}
			out = append(out, abs)
		}
	}
	return out, nil
}

func (e *Engine) ignored(rel string) bool {
	for _, pattern := range e.ignore {
		if e.glob.matches(pattern, rel) {
			return true
		}
	}
	return false
}

func (e *Engine) buildPage(file string, entryIDs []string) (Page, error) {
	relFile, err := pathutil.Rel(e.root, file)
	if err != nil {
		return Page{}, ferrors.DiscoveryError("entry file is outside the project root").
			WithCause(fmt.Errorf("%w: %s: %w", derrors.ErrRelativePath, file, err)).
			WithContext("file", file).
			Build()
	}
	relDir := path.Dir(relFile)
	dir := path.Dir(file)

	page, err := e.paths.ResolvePath(e.pagePath(dir), relFile, file)
	if err != nil {
		return Page{}, hookError("path", file, err)
	}

	title, err := e.format.FormatTitle(e.titles.Resolve(file), relDir)
	if err != nil {
		return Page{}, hookError("title", file, err)
	}

	names, err := e.siblings(file)
	if err != nil {
		return Page{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot list entry files").
			WithContext("file", file).
			Build()
	}
	fileList := make(map[string]string, len(names))
	for _, name := range names {
		fileList[name] = e.links.Resolve(pathutil.Join(dir, name))
	}

	return Page{
		Key:          file,
		RelativePath: relFile,
		Entry:        page,
		Directory:    dir,
		Title:        title,
		Files:        names,
		FileList:     fileList,
		Active:       e.isActive(page, entryIDs),
	}, nil
}

// pagePath maps an entry directory to "<base>/<dir relative to WorkDir>.html". An entry
// placed directly in WorkDir yields "<base>/.html".
func (e *Engine) pagePath(dir string) string {
	rel, err := pathutil.Rel(e.workDir, dir)
	if err != nil || rel == "." {
		rel = ""
	}
	return pathutil.Join(e.base, pathutil.EnsureLeadingSlash(rel+pathutil.PageExt))
}

// isActive reports whether any entry identifier ends with the page path relative to
// the base. The match is a plain suffix test, so "/other/foo/bar" also activates
// "foo/bar".
func (e *Engine) isActive(page string, entryIDs []string) bool {
	if len(entryIDs) == 0 {
		return false
	}
	rel, err := pathutil.Rel(e.base, page)
	if err != nil {
		rel = page
	}
	suffix := pathutil.TrimPageExt(pathutil.Normalize(rel))
	for _, id := range entryIDs {
		if strings.HasSuffix(id, suffix) {
			return true
		}
	}
	return false
}

func hookError(hook, file string, err error) error {
	return ferrors.HookError(hook+" hook failed").
		WithCause(fmt.Errorf("%w: %s hook for %s: %w", derrors.ErrHookFailed, hook, file, err)).
		WithContext("file", file).
		Build()
}

// partitionActive moves active pages to the front, keeping relative order in both
// partitions.
func partitionActive(pages []Page) []Page {
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		if p.Active {
			out = append(out, p)
		}
	}
	for _, p := range pages {
		if !p.Active {
			out = append(out, p)
		}
	}
	return out
}
