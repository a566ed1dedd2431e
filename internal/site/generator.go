package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rgerrors "git.home.luguber.info/inful/refgen/internal/errors"
	"git.home.luguber.info/inful/refgen/internal/frontmatter"
	"git.home.luguber.info/inful/refgen/internal/helpinfo"
	"git.home.luguber.info/inful/refgen/internal/lint"
	"git.home.luguber.info/inful/refgen/internal/logfields"
	"git.home.luguber.info/inful/refgen/internal/metrics"
	"git.home.luguber.info/inful/refgen/internal/render"
)

// Options configures a Generator.
type Options struct {
	Layout      Layout
	Frontmatter bool
	// Lint, when set, checks every rendered page before it is written.
	Lint     *lint.Linter
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Generator renders one help dump into a reference tree.
type Generator struct {
	info     *helpinfo.HelpInfo
	renderer *render.Renderer
	opts     Options
}

// Report summarises a generation run.
type Report struct {
	Written        []string
	Unchanged      []string
	SkippedTargets []string
	Categories     []string
	Issues         []lint.Issue
}

// NewGenerator creates a generator. Zero-valued options fall back to the
// default layout under the current directory, a no-op recorder and the
// default logger.
func NewGenerator(info *helpinfo.HelpInfo, renderer *render.Renderer, opts Options) *Generator {
	if opts.Layout.ReferenceDir == "" && opts.Layout.GlobalPage == "" && opts.Layout.Extension == "" {
		opts.Layout = DefaultLayout(opts.Layout.Root)
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Generator{info: info, renderer: renderer, opts: opts}
}

// Pages renders every page in output order: the global page, then each
// named scope in input order, then each visible target type. Hidden target
// types are returned by alias.
func (g *Generator) Pages() ([]Page, []string, error) {
	var pages []Page
	var hidden []string
	layout := g.opts.Layout

	log := g.opts.Logger

	// Page placement follows each record's own scope field, not its map key.
	for _, scope := range g.info.Scopes.All() {
		name := scope.Scope
		section := SectionSubsystems
		title := name
		switch {
		case scope.IsGlobal():
			section, title = SectionGlobal, "Global options"
		case scope.IsGoal:
			section = SectionGoals
		}

		body, err := g.renderer.Scope(scope, g.info.Goal(name))
		if err != nil {
			log.Error("Failed to render scope page",
				logfields.Scope(name),
				logfields.Template(render.SubsystemTemplate),
				logfields.Error(err))
			return nil, nil, fmt.Errorf("render scope %q: %w", name, err)
		}
		log.Debug("Rendered scope page", logfields.Scope(name), logfields.Count(len(scope.Options())))
		page := Page{
			Section:     section,
			Name:        name,
			RelPath:     layout.PagePath(section, name),
			Title:       title,
			Description: summary(scope.Description),
			Body:        body,
		}
		if section == SectionGlobal {
			// The global page leads the tree regardless of where the dump lists it.
			pages = append([]Page{page}, pages...)
			continue
		}
		pages = append(pages, page)
	}

	for alias, target := range g.info.TargetTypes.All() {
		if target.Hidden() {
			hidden = append(hidden, alias)
			continue
		}
		body, err := g.renderer.Target(target)
		if err != nil {
			log.Error("Failed to render target page",
				logfields.Alias(alias),
				logfields.Template(render.TargetTemplate),
				logfields.Error(err))
			return nil, nil, fmt.Errorf("render target %q: %w", alias, err)
		}
		desc := target.Summary
		if desc == "" {
			desc = target.Description
		}
		pages = append(pages, Page{
			Section:     SectionTargets,
			Name:        alias,
			RelPath:     layout.PagePath(SectionTargets, alias),
			Title:       alias,
			Description: summary(desc),
			Body:        body,
		})
	}
	return pages, hidden, nil
}

// Generate renders and writes all pages and category files. Pages whose
// on-disk copy already carries a valid, identical fingerprint are left alone.
func (g *Generator) Generate() (*Report, error) {
	start := time.Now()
	log := g.opts.Logger
	rec := g.opts.Recorder
	dir := g.opts.Layout.Dir()

	pages, hidden, err := g.Pages()
	if err != nil {
		return nil, err
	}

	report := &Report{SkippedTargets: hidden}
	for _, alias := range hidden {
		rec.IncPageSkipped(string(SectionTargets), metrics.SkipHidden)
		log.Debug("Skipping hidden target type", logfields.Alias(alias))
	}

	for _, page := range pages {
		content, err := page.Content(g.opts.Frontmatter)
		if err != nil {
			return report, rgerrors.InternalError("compose page "+page.RelPath, err)
		}

		if g.opts.Lint != nil {
			for _, issue := range g.opts.Lint.CheckContent(page.RelPath, content) {
				rec.IncLintIssue(issue.Rule)
				log.Warn(issue.Message,
					logfields.Path(issue.FilePath),
					logfields.Rule(issue.Rule),
					slog.Int("line", issue.Line),
					slog.String("severity", issue.Severity.String()))
				report.Issues = append(report.Issues, issue)
			}
		}

		if g.unchanged(filepath.Join(dir, filepath.FromSlash(page.RelPath)), content) {
			rec.IncPageSkipped(string(page.Section), metrics.SkipUnchanged)
			report.Unchanged = append(report.Unchanged, page.RelPath)
			log.Debug("Page unchanged", logfields.Section(string(page.Section)), logfields.Path(page.RelPath))
			continue
		}

		if _, err := WriteFile(dir, page.RelPath, content); err != nil {
			return report, err
		}
		rec.IncPageWritten(string(page.Section))
		report.Written = append(report.Written, page.RelPath)
		log.Debug("Wrote page", logfields.Section(string(page.Section)), logfields.Path(page.RelPath))
	}
	log.Info("Reference pages generated",
		slog.Int("written", len(report.Written)),
		slog.Int("unchanged", len(report.Unchanged)),
		slog.Int("hidden_targets", len(hidden)))

	for _, section := range Sections {
		content, err := CategoryContent(section)
		if err != nil {
			return report, fmt.Errorf("category %s: %w", section, err)
		}
		rel := g.opts.Layout.CategoryPath(section)
		if _, err := WriteFile(dir, rel, content); err != nil {
			return report, err
		}
		report.Categories = append(report.Categories, rel)
	}
	log.Info("Category files written", logfields.Count(len(report.Categories)))

	elapsed := time.Since(start)
	rec.ObserveGenerationDuration(elapsed)
	log.Info("Generation complete",
		logfields.Path(dir),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return report, nil
}

// unchanged reports whether the file at path can be kept as is.
func (g *Generator) unchanged(path string, content []byte) bool {
	// #nosec G304 -- path is built from the output layout.
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if !g.opts.Frontmatter {
		return bytes.Equal(existing, content)
	}
	stored, _, ok, err := frontmatter.Verify(existing)
	if err != nil || !ok {
		return false
	}
	fresh, found := frontmatter.ReadFingerprint(content)
	return found && fresh == stored
}

// expected returns every file a run would produce, keyed by relative path.
func (g *Generator) expected() (map[string][]byte, []string, error) {
	pages, _, err := g.Pages()
	if err != nil {
		return nil, nil, err
	}
	files := make(map[string][]byte, len(pages)+len(Sections))
	order := make([]string, 0, len(pages)+len(Sections))
	for _, page := range pages {
		content, err := page.Content(g.opts.Frontmatter)
		if err != nil {
			return nil, nil, rgerrors.InternalError("compose page "+page.RelPath, err)
		}
		files[page.RelPath] = content
		order = append(order, page.RelPath)
	}
	for _, section := range Sections {
		content, err := CategoryContent(section)
		if err != nil {
			return nil, nil, err
		}
		rel := g.opts.Layout.CategoryPath(section)
		files[rel] = content
		order = append(order, rel)
	}
	return files, order, nil
}

// Check renders every file in memory and compares it with the reference
// tree on disk. Nothing is written.
func (g *Generator) Check() (*CheckReport, error) {
	files, order, err := g.expected()
	if err != nil {
		return nil, err
	}
	dir := g.opts.Layout.Dir()
	report := &CheckReport{}

	for _, rel := range order {
		want := files[rel]
		// #nosec G304 -- rel comes from the output layout.
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			report.Missing = append(report.Missing, rel)
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", rel, err)
		case !bytes.Equal(got, want):
			diff, err := unifiedDiff(rel, got, want)
			if err != nil {
				return nil, err
			}
			report.Changed = append(report.Changed, Drift{Path: rel, Diff: diff})
		}
	}

	extra, err := g.extraPages(files)
	if err != nil {
		return nil, err
	}
	report.Extra = extra
	return report, nil
}

// extraPages lists pages on disk that the current dump no longer produces.
func (g *Generator) extraPages(files map[string][]byte) ([]string, error) {
	dir := g.opts.Layout.Dir()
	var extra []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != g.opts.Layout.Extension {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := files[rel]; !ok {
			extra = append(extra, rel)
		}
		return nil
	})
	return extra, err
}
