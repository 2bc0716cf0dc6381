// Package server is the entrynav dev server: it serves the navigation page under the
// current base, a JSON index, health and optional Prometheus metrics.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path"
	"time"

	"git.home.luguber.info/inful/entrynav/internal/discovery"
	ferrors "git.home.luguber.info/inful/entrynav/internal/foundation/errors"
	"git.home.luguber.info/inful/entrynav/internal/logfields"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/pathutil"
	"git.home.luguber.info/inful/entrynav/internal/render"
	smw "git.home.luguber.info/inful/entrynav/internal/server/middleware"
	"git.home.luguber.info/inful/entrynav/internal/server/responses"
	"git.home.luguber.info/inful/entrynav/internal/version"
)

// EntryName is the last path element of the navigation page.
const EntryName = "__entry"

// Source provides the data the server renders. nav.Context implements it.
type Source interface {
	TemplateParams() render.Params
	Snapshot() *discovery.Snapshot
	PublicPath() string
}

// Options configures a Server.
type Options struct {
	Addr     string           // Listen address, e.g. ":8090"
	Metrics  http.Handler     // Served at /metrics when non-nil
	Recorder metrics.Recorder // Request metrics
}

// Server serves the navigation page.
type Server struct {
	src          Source
	opts         Options
	errorAdapter *ferrors.HTTPErrorAdapter
	startTime    time.Time
	handler      http.Handler

	httpServer *http.Server
	listener   net.Listener
}

// EntryPath returns the navigation page path under base.
func EntryPath(base string) string {
	return path.Join(pathutil.EnsureLeadingSlash(base), EntryName)
}

// New constructs a server for src.
func New(src Source, opts Options) *Server {
	s := &Server{
		src:          src,
		opts:         opts,
		errorAdapter: ferrors.NewHTTPErrorAdapter(slog.Default()),
		startTime:    time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	mux.HandleFunc("/", s.handleEntry)

	s.handler = smw.Chain(slog.Default(), s.errorAdapter, opts.Recorder)(mux)
	return s
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler { return s.handler }

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return ferrors.RuntimeError("failed to bind dev server").
			WithCause(err).
			WithContext("addr", s.opts.Addr).
			Build()
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Dev server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Dev server listening", logfields.URL(ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	entry := EntryPath(s.src.PublicPath())
	switch r.URL.Path {
	case entry, entry + "/", entry + pathutil.PageExt:
		s.serveIndex(w, r)
	case entry + ".json":
		s.serveJSON(w, r)
	default:
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.NewError(ferrors.CategoryNotFound, "not found").
			WithSeverity(ferrors.SeverityInfo).
			WithContext("path", r.URL.Path).
			WithContext("entry", entry).
			Build())
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.Render(&buf, s.src.TemplateParams()); err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) serveJSON(w http.ResponseWriter, r *http.Request) {
	params := s.src.TemplateParams()
	snap := s.src.Snapshot()
	resp := responses.IndexResponse{
		Name:        params.Name,
		ProjectPath: params.ProjectPath,
		Pages:       make([]responses.PageResponse, 0, snap.Len()),
	}
	for _, p := range snap.Pages() {
		resp.Pages = append(resp.Pages, responses.PageResponse{
			Entry:     p.Entry,
			Title:     p.Title,
			Directory: p.Directory,
			Active:    p.Active,
			FileList:  p.FileList,
		})
	}
	s.writeJSON(w, r, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.src.Snapshot()
	s.writeJSON(w, r, responses.HealthResponse{
		Status:      "healthy",
		Version:     version.Version,
		Uptime:      time.Since(s.startTime).Seconds(),
		ScanID:      snap.ID,
		ScannedAt:   snap.ScannedAt,
		Pages:       snap.Len(),
		ActivePages: snap.ActiveCount(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode response").Build())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
