package metrics

import "time"

// OutcomeLabel enumerates scan outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeEmpty   OutcomeLabel = "empty"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for page scans and served requests.
type Recorder interface {
	ObserveScanDuration(d time.Duration)
	IncScanOutcome(outcome OutcomeLabel)
	SetPages(total, active int)
	IncConfigReload(success bool)
	ObserveHTTPRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveScanDuration(time.Duration)             {}
func (NoopRecorder) IncScanOutcome(OutcomeLabel)                   {}
func (NoopRecorder) SetPages(int, int)                             {}
func (NoopRecorder) IncConfigReload(bool)                          {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
