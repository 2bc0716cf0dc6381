package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/entrynav/internal/entries"
	"git.home.luguber.info/inful/entrynav/internal/metrics"
	"git.home.luguber.info/inful/entrynav/internal/nav"
	"git.home.luguber.info/inful/entrynav/internal/server/responses"
)

func newNav(t *testing.T) *nav.Context {
	t.Helper()
	root := filepath.ToSlash(filepath.Join(t.TempDir(), "demo"))
	for _, rel := range []string{"src/modules/foo/main.ts", "src/modules/bar/main.ts"} {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
	return nav.New(nav.Options{
		Root:      root,
		WorkDir:   root + "/src/modules",
		Sources:   []string{"**/*/main.ts"},
		URLScheme: "vscode",
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestEntryPath(t *testing.T) {
	require.Equal(t, "/__entry", EntryPath("/"))
	require.Equal(t, "/__entry", EntryPath(""))
	require.Equal(t, "/app/__entry", EntryPath("/app/"))
	require.Equal(t, "/app/__entry", EntryPath("app"))
}

func TestEntryRoutes(t *testing.T) {
	ctx := newNav(t)
	require.NoError(t, ctx.Setup("/app/", entries.Keyed("foo")))
	h := New(ctx, Options{}).Handler()

	for _, target := range []string{"/app/__entry", "/app/__entry/", "/app/__entry.html"} {
		rr := get(t, h, target)
		require.Equal(t, http.StatusOK, rr.Code, target)
		require.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rr.Body.String(), "demo(total 2 / active 1) Navigation")
		require.Contains(t, rr.Body.String(), `href="/app/foo.html"`)
	}

	require.Equal(t, http.StatusNotFound, get(t, h, "/__entry").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, "/app/other").Code)
}

func TestEntryBeforeFirstScan(t *testing.T) {
	h := New(newNav(t), Options{}).Handler()
	rr := get(t, h, "/__entry")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "No pages discovered.")
}

func TestEntryJSON(t *testing.T) {
	ctx := newNav(t)
	require.NoError(t, ctx.Setup("/", entries.Keyed("bar")))
	rr := get(t, New(ctx, Options{}).Handler(), "/__entry.json")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp responses.IndexResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Pages, 2)
	require.Equal(t, "/bar.html", resp.Pages[0].Entry)
	require.True(t, resp.Pages[0].Active)
	require.Contains(t, resp.Pages[0].FileList["main.ts"], "vscode://file/")
}

func TestHealth(t *testing.T) {
	ctx := newNav(t)
	require.NoError(t, ctx.Setup("/", entries.Keyed("foo")))
	rr := get(t, New(ctx, Options{}).Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp responses.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, ctx.Snapshot().ID, resp.ScanID)
	require.Equal(t, 2, resp.Pages)
	require.Equal(t, 1, resp.ActivePages)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	h := New(newNav(t), Options{Metrics: metrics.HTTPHandler(reg), Recorder: rec}).Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/__entry").Code)
	rr := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "entrynav_http_request_duration_seconds")
}

func TestMetricsDisabled(t *testing.T) {
	h := New(newNav(t), Options{}).Handler()
	require.Equal(t, http.StatusNotFound, get(t, h, "/metrics").Code)
}

func TestStartStop(t *testing.T) {
	ctx := newNav(t)
	require.NoError(t, ctx.Setup("/", entries.None()))
	srv := New(ctx, Options{Addr: "127.0.0.1:0"})
	require.NoError(t, srv.Start(context.Background()))

	resp, err := http.Get("http://" + srv.Addr() + "/__entry")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Navigation")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(stopCtx))
}
