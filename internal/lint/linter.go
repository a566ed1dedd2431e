package lint

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/refgen/internal/frontmatter"
)

// Linter applies page rules to generated reference pages.
type Linter struct {
	rules []Rule
	quiet bool
}

// NewLinter creates a linter with the default rules. In quiet mode only
// error-level issues are reported.
func NewLinter(quiet bool) *Linter {
	return &Linter{
		rules: []Rule{BraceRule{}, FenceRule{}, FingerprintRule{}},
		quiet: quiet,
	}
}

// CheckContent lints one page held in memory.
func (l *Linter) CheckContent(filePath string, content []byte) []Issue {
	page := Page{Path: filePath, Content: content, Body: content}
	if _, body, had, err := frontmatter.Split(content); err == nil && had {
		page.Body = body
		page.HasFrontmatter = true
		page.LineOffset = bytes.Count(content[:len(content)-len(body)], []byte("\n"))
	}

	var issues []Issue
	for _, rule := range l.rules {
		for _, issue := range rule.Check(page) {
			if l.quiet && issue.Severity != SeverityError {
				continue
			}
			issues = append(issues, issue)
		}
	}
	return issues
}

// LintPath lints a page file or every page under a directory.
func (l *Linter) LintPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}}
	if !info.IsDir() {
		result.FilesTotal = 1
		return result, l.lintFile(path, result)
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsPageFile(p) {
			return nil
		}
		result.FilesTotal++
		return l.lintFile(p, result)
	})
	return result, err
}

func (l *Linter) lintFile(path string, result *Result) error {
	// #nosec G304 -- path comes from walking the directory being linted.
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	result.Issues = append(result.Issues, l.CheckContent(path, content)...)
	return nil
}
