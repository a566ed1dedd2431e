package commands

import (
	"fmt"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Path   string `arg:"" help:"Page file or directory of pages to lint" type:"path"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
}

func (c *LintCmd) Run(g *Global, _ *CLI) error {
	result, err := lint.NewLinter(c.Quiet).LintPath(c.Path)
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	if err := lint.NewFormatter(c.Format).Format(g.Stdout, result, c.Path); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if result.HasErrors() {
		return rgerrors.LintFailed(result.ErrorCount())
	}
	return nil
}
