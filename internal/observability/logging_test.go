package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextValues(t *testing.T) {
	buf := captureLogs(t)

	ctx := WithScanID(context.Background(), "scan-1")
	ctx = WithTrigger(ctx, TriggerReload)
	ctx = WithScanID(ctx, "scan-2")
	WarnContext(ctx, "Entries ignored")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "scan-2", rec["scan_id"])
	require.Equal(t, "config_reload", rec["trigger"])
}

func TestEmptyContext(t *testing.T) {
	require.Equal(t, LogContext{}, extractLogContext(context.Background()))
	require.Empty(t, contextAttrs(context.Background()))
}

func TestInfoContext(t *testing.T) {
	buf := captureLogs(t)

	ctx := WithTrigger(WithScanID(context.Background(), "scan-1"), TriggerStartup)
	InfoContext(ctx, "Scan complete", slog.Int("count", 2))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "Scan complete", rec["msg"])
	require.Equal(t, "scan-1", rec["scan_id"])
	require.Equal(t, "startup", rec["trigger"])
	require.EqualValues(t, 2, rec["count"])
}

func TestLevelsWithoutContextFields(t *testing.T) {
	buf := captureLogs(t)

	ctx := context.Background()
	DebugContext(ctx, "debug")
	WarnContext(ctx, "warn")
	ErrorContext(ctx, "error")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	for i, want := range []string{"DEBUG", "WARN", "ERROR"} {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(lines[i], &rec))
		require.Equal(t, want, rec["level"])
		require.NotContains(t, rec, "scan_id")
	}
}
