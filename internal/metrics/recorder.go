package metrics

import "time"

// SkipReason enumerates why a page was not written.
type SkipReason string

const (
	SkipHidden    SkipReason = "hidden"
	SkipUnchanged SkipReason = "unchanged"
)

// Recorder defines observability hooks for a generation run.
type Recorder interface {
	IncPageWritten(section string)
	IncPageSkipped(section string, reason SkipReason)
	IncLintIssue(rule string)
	ObserveGenerationDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncPageWritten(string)                   {}
func (NoopRecorder) IncPageSkipped(string, SkipReason)       {}
func (NoopRecorder) IncLintIssue(string)                     {}
func (NoopRecorder) ObserveGenerationDuration(time.Duration) {}
