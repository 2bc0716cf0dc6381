// Package metrics records scan and dev-server observations.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so nothing needs a nil check:
//
//	ctx := nav.New(opts) // NoopRecorder
//	ctx := nav.New(opts, nav.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on the given registry and HTTPHandler
// exposes that registry for scraping.
package metrics
