package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/refgen/internal/logfields"
	"git.home.luguber.info/inful/refgen/internal/site"
	"git.home.luguber.info/inful/refgen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SourceFlags `embed:""`

	Debounce time.Duration `help:"Quiet period after the last change before regenerating" default:"500ms"`
}

func (c *WatchCmd) Run(g *Global, _ *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, g)
}

func (c *WatchCmd) run(ctx context.Context, g *Global) error {
	regenerate := func(context.Context) error {
		// The dump and templates are re-read on every run.
		gen, err := c.generator(g, site.Options{})
		if err != nil {
			return err
		}
		_, err = gen.Generate()
		return err
	}

	if err := regenerate(ctx); err != nil {
		g.Logger.Error("Initial generation failed", logfields.Error(err))
	}

	paths := []string{c.inputPath(g.Config)}
	if dir := c.templatesDir(g.Config); dir != "" {
		paths = append(paths, dir)
	}
	w, err := watch.New(paths, c.Debounce, regenerate, g.Logger)
	if err != nil {
		return err
	}
	err = w.Run(ctx)
	g.Logger.Info("Stopped watching", logfields.Version(c.Version))
	return err
}
