package commands

import (
	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/lint"
	"git.home.luguber.info/inful/refgen/internal/metrics"
	"git.home.luguber.info/inful/refgen/internal/site"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	SourceFlags `embed:""`

	Lint        bool   `help:"Lint rendered pages; fail when a page would break the site build"`
	MetricsFile string `help:"Write run metrics in Prometheus text format to this file" type:"path"`
}

func (c *GenerateCmd) Run(g *Global, _ *CLI) error {
	var prom *metrics.PrometheusRecorder
	opts := site.Options{Recorder: metrics.NoopRecorder{}}
	if c.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		opts.Recorder = prom
	}
	if c.Lint {
		opts.Lint = lint.NewLinter(false)
	}

	gen, err := c.generator(g, opts)
	if err != nil {
		return err
	}
	report, err := gen.Generate()
	if err != nil {
		return err
	}

	if prom != nil {
		if err := prom.WriteTextfile(c.MetricsFile); err != nil {
			return rgerrors.WriteFailed(c.MetricsFile, err)
		}
	}

	if c.Lint {
		result := lint.Result{Issues: report.Issues}
		if result.HasErrors() {
			return rgerrors.LintFailed(result.ErrorCount())
		}
	}
	return nil
}
