package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	pagesWritten   *prom.CounterVec
	pagesUnchanged *prom.CounterVec
	pagesSkipped   *prom.CounterVec
	lintIssues     *prom.CounterVec
	duration       prom.Histogram
}

// NewPrometheusRecorder constructs and registers the run metrics on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		pagesWritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refgen",
			Name:      "pages_written_total",
			Help:      "Reference pages written, by section",
		}, []string{"section"}),
		pagesUnchanged: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refgen",
			Name:      "pages_unchanged_total",
			Help:      "Reference pages left untouched because their fingerprint matched",
		}, []string{"section"}),
		pagesSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refgen",
			Name:      "pages_skipped_total",
			Help:      "Entries not rendered, by reason",
		}, []string{"reason"}),
		lintIssues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refgen",
			Name:      "lint_issues_total",
			Help:      "Lint issues found in rendered pages, by rule",
		}, []string{"rule"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "refgen",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of a generation run",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.pagesWritten, pr.pagesUnchanged, pr.pagesSkipped, pr.lintIssues, pr.duration)
	return pr
}

func (p *PrometheusRecorder) IncPageWritten(section string) {
	if p == nil {
		return
	}
	p.pagesWritten.WithLabelValues(section).Inc()
}

func (p *PrometheusRecorder) IncPageSkipped(section string, reason SkipReason) {
	if p == nil {
		return
	}
	if reason == SkipUnchanged {
		p.pagesUnchanged.WithLabelValues(section).Inc()
	}
	p.pagesSkipped.WithLabelValues(string(reason)).Inc()
}

func (p *PrometheusRecorder) IncLintIssue(rule string) {
	if p == nil {
		return
	}
	p.lintIssues.WithLabelValues(rule).Inc()
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.duration.Observe(d.Seconds())
}

// WriteTextfile writes every registered metric to path in the Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
