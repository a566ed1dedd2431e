package commands

import (
	"fmt"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/logfields"
	"git.home.luguber.info/inful/refgen/internal/site"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	SourceFlags `embed:""`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	gen, err := c.generator(g, site.Options{})
	if err != nil {
		return err
	}
	report, err := gen.Check()
	if err != nil {
		return err
	}

	if report.Clean() {
		g.Logger.Info("Reference pages are up to date", logfields.Version(c.Version))
		return nil
	}
	if err := report.Write(g.Stdout); err != nil {
		return fmt.Errorf("write check report: %w", err)
	}
	return rgerrors.DriftDetected(report.Count())
}
