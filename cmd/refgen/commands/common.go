package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/refgen/internal/config"
	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/version"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: refgen.yaml, refgen.toml or the XDG config dir)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `help:"Log output format (text or json); overrides the config file"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate reference pages from a help dump"`
	Check    CheckCmd    `cmd:"" help:"Report reference pages that differ from a fresh rendering"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate reference pages whenever the help dump or templates change"`
	Lint     LintCmd     `cmd:"" help:"Check MDX pages for constructs the site build rejects"`
}

// AfterApply runs after flag parsing; loads configuration and sets up logging once.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		g.Logger = newLogger(g.Stderr, slog.LevelInfo, config.LogFormat(c.LogFormat))
		return err
	}

	level := config.LogLevel(cfg.Log.Level).Slog()
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := config.LogFormat(cfg.Log.Format)
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	g.Config = cfg
	g.Logger = newLogger(g.Stderr, level, format)
	slog.SetDefault(g.Logger)
	if cfg.Path != "" {
		g.Logger.Debug("Loaded configuration", "config_path", cfg.Path)
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer, options ...kong.Option) int {
	cli := &CLI{}
	g := &Global{Stdout: stdout, Stderr: stderr}

	opts := []kong.Option{
		kong.Name("refgen"),
		kong.Description("Generate MDX reference pages from a build tool's help dump."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Bind(g),
	}
	parser, err := kong.New(cli, append(opts, options...)...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "refgen: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		var rge *rgerrors.RefgenError
		if rgerrors.As(err, &rge) && g.Logger != nil {
			return rgerrors.NewCLIErrorAdapter(cli.Verbose, g.Logger).Report(err)
		}
		_, _ = fmt.Fprintf(stderr, "refgen: error: %v\n", err)
		return 80
	}

	adapter := rgerrors.NewCLIErrorAdapter(cli.Verbose, g.Logger)
	return adapter.Report(ctx.Run(cli))
}
