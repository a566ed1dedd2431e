package commands

import (
	"git.home.luguber.info/inful/refgen/internal/config"
	"git.home.luguber.info/inful/refgen/internal/helpinfo"
	"git.home.luguber.info/inful/refgen/internal/logfields"
	"git.home.luguber.info/inful/refgen/internal/redact"
	"git.home.luguber.info/inful/refgen/internal/render"
	"git.home.luguber.info/inful/refgen/internal/site"
)

// SourceFlags select the help dump, templates and output tree shared by
// generate, check and watch.
type SourceFlags struct {
	Version       string `arg:"" help:"Version of the help dump; reads <version>.help-all.json and writes under <version>/"`
	Input         string `short:"i" help:"Help dump path (overrides input_pattern)" type:"path"`
	Output        string `short:"o" help:"Output root directory (overrides output_root)" type:"path"`
	Templates     string `short:"t" help:"Directory with subsystem.mdx.tmpl and target.mdx.tmpl overriding the embedded templates" type:"path"`
	NoFrontmatter bool   `help:"Do not emit YAML frontmatter on pages"`
}

// inputPath returns the help dump location.
func (s *SourceFlags) inputPath(cfg *config.Config) string {
	if s.Input != "" {
		return s.Input
	}
	return cfg.InputPath(s.Version)
}

// templatesDir returns the template override directory, if any.
func (s *SourceFlags) templatesDir(cfg *config.Config) string {
	if s.Templates != "" {
		return s.Templates
	}
	return cfg.TemplatesDir
}

// layout returns the output layout for this run.
func (s *SourceFlags) layout(cfg *config.Config) site.Layout {
	root := s.Output
	if root == "" {
		root = cfg.OutputPath(s.Version)
	}
	return site.Layout{
		Root:         root,
		ReferenceDir: cfg.ReferenceDir,
		GlobalPage:   cfg.GlobalPage,
		Extension:    cfg.Extension,
	}
}

// generator loads the help dump and builds a generator over it. opts
// receives the layout, frontmatter setting and logger.
func (s *SourceFlags) generator(g *Global, opts site.Options) (*site.Generator, error) {
	cfg := g.Config
	input := s.inputPath(cfg)

	info, err := helpinfo.Load(input)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Loaded help dump",
		logfields.Version(s.Version),
		logfields.Path(input),
		logfields.Count(info.Scopes.Len()+info.TargetTypes.Len()))

	redactor := redact.FromHelpInfo(info, cfg.RedactKeys())
	if redactor.Active() {
		g.Logger.Debug("Redacting environment paths",
			"buildroot", redactor.Buildroot,
			"cache_dir", redactor.CacheDir)
	}

	renderer, err := render.New(info, redactor, s.templatesDir(cfg))
	if err != nil {
		return nil, err
	}

	opts.Layout = s.layout(cfg)
	opts.Frontmatter = cfg.FrontmatterEnabled() && !s.NoFrontmatter
	opts.Logger = g.Logger
	return site.NewGenerator(info, renderer, opts), nil
}
