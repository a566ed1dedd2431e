// Package metrics records what a generation run did.
//
// Components receive a Recorder and default to NoopRecorder, so no nil checks
// are needed at call sites. When the CLI is given --metrics-file, a
// PrometheusRecorder is injected and its registry is written in the
// Prometheus text format once the run finishes (see WriteTextfile), ready for
// a node_exporter textfile collector.
package metrics
