package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prom.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key += "|" + l.GetName() + "=" + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveScanDuration(150 * time.Millisecond)
	pr.IncScanOutcome(OutcomeSuccess)
	pr.IncScanOutcome(OutcomeSuccess)
	pr.IncScanOutcome(OutcomeFailed)
	pr.SetPages(5, 2)
	pr.IncConfigReload(true)
	pr.ObserveHTTPRequest("entry", http.StatusOK, time.Millisecond)

	got := gather(t, reg)
	require.Equal(t, 1.0, got["entrynav_scan_duration_seconds"])
	require.Equal(t, 2.0, got["entrynav_scan_outcomes_total|outcome=success"])
	require.Equal(t, 1.0, got["entrynav_scan_outcomes_total|outcome=failed"])
	require.Equal(t, 5.0, got["entrynav_pages|state=total"])
	require.Equal(t, 2.0, got["entrynav_pages|state=active"])
	require.Equal(t, 1.0, got["entrynav_config_reloads_total|result=success"])
	require.Equal(t, 1.0, got["entrynav_http_request_duration_seconds|route=entry|status=200"])
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveScanDuration(time.Second)
		pr.IncScanOutcome(OutcomeEmpty)
		pr.SetPages(1, 1)
		pr.IncConfigReload(false)
		pr.ObserveHTTPRequest("entry", 500, time.Second)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncScanOutcome(OutcomeSuccess)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `entrynav_scan_outcomes_total{outcome="success"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.SetPages(3, 1)
	r.IncScanOutcome(OutcomeEmpty)
}
