package commands

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/entrynav/internal/config"
	"git.home.luguber.info/inful/entrynav/internal/server/responses"
)

func startDemo(t *testing.T, cfgYAML string) (*devServer, string) {
	t.Helper()
	cfg, root, cfgPath := loadDemo(t, cfgYAML)
	ctx, cancel := context.WithCancel(context.Background())
	dev, err := startDevServer(ctx, devOptions{
		ConfigPath:  cfgPath,
		DefaultRoot: root,
		Config:      cfg,
		Listen:      "127.0.0.1:0",
		Watch:       true,
		Debounce:    20 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dev.Stop(context.Background()))
		cancel()
	})
	return dev, root
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec,noctx // test server address
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func getIndex(t *testing.T, dev *devServer) responses.IndexResponse {
	t.Helper()
	status, body := getBody(t, "http://"+dev.Addr()+"/__entry.json")
	require.Equal(t, http.StatusOK, status)
	var idx responses.IndexResponse
	require.NoError(t, json.Unmarshal([]byte(body), &idx))
	return idx
}

func TestDevServer_ServesNavigationPage(t *testing.T) {
	dev, _ := startDemo(t, demoConfig)

	status, body := getBody(t, "http://"+dev.Addr()+"/__entry/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "demo(total 2 / active 1) Navigation")

	idx := getIndex(t, dev)
	require.Len(t, idx.Pages, 2)
	require.Equal(t, "/foo.html", idx.Pages[0].Entry)
	require.True(t, idx.Pages[0].Active)

	status, _ = getBody(t, "http://"+dev.Addr()+"/metrics")
	require.Equal(t, http.StatusNotFound, status)
}

func TestDevServer_RescansOnConfigChange(t *testing.T) {
	dev, root := startDemo(t, demoConfig+"server:\n  metrics: true\n")

	baz := filepath.Join(root, "src/modules/baz/main.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(baz), 0o755))
	require.NoError(t, os.WriteFile(baz, nil, 0o644))

	updated := "host: vite\nentries:\n  baz: baz.html\nbase: /app/\nserver:\n  metrics: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultFile), []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return dev.project.PublicPath() == "/app/" && dev.project.Snapshot().Len() == 3
	}, 5*time.Second, 20*time.Millisecond)

	status, body := getBody(t, "http://"+dev.Addr()+"/app/__entry.json")
	require.Equal(t, http.StatusOK, status)
	var idx responses.IndexResponse
	require.NoError(t, json.Unmarshal([]byte(body), &idx))
	require.Equal(t, "/app/baz.html", idx.Pages[0].Entry)
	require.True(t, idx.Pages[0].Active)

	status, _ = getBody(t, "http://"+dev.Addr()+"/__entry/")
	require.Equal(t, http.StatusNotFound, status)

	status, body = getBody(t, "http://"+dev.Addr()+"/metrics")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `entrynav_config_reloads_total{result="success"}`)
	require.Contains(t, body, "entrynav_scan_duration_seconds")
}

func TestDevServer_ProductionSkipsDiscovery(t *testing.T) {
	t.Setenv(EnvMode, "production")
	dev, _ := startDemo(t, demoConfig)

	status, body := getBody(t, "http://"+dev.Addr()+"/healthz")
	require.Equal(t, http.StatusOK, status)
	var health responses.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	require.Equal(t, "healthy", health.Status)
	require.Zero(t, health.Pages)
	require.Nil(t, dev.watcher)
}

func TestServeCmd_ListenAddr(t *testing.T) {
	cfg, _, _ := loadDemo(t, "server:\n  host: 127.0.0.1\n  port: 9000\n")
	require.Equal(t, "127.0.0.1:9000", (&ServeCmd{}).listenAddr(cfg))
	require.Equal(t, ":1234", (&ServeCmd{Listen: ":1234"}).listenAddr(cfg))

	cfg, _, _ = loadDemo(t, "")
	require.Equal(t, ":8090", (&ServeCmd{}).listenAddr(cfg))
}
