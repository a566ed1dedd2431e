package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, path string) error
}

// NewFormatter returns the formatter for name ("json" or anything else for text).
func NewFormatter(name string) Formatter {
	if name == "json" {
		return JSONFormatter{}
	}
	return TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (TextFormatter) Format(w io.Writer, result *Result, path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Linting reference pages in: %s\n", path)
	b.WriteString(strings.Repeat("━", 60) + "\n")

	for _, issue := range result.Issues {
		if issue.Line > 0 {
			fmt.Fprintf(&b, "%s %s:%d [%s]\n  %s\n", issue.Severity, issue.FilePath, issue.Line, issue.Rule, issue.Message)
		} else {
			fmt.Fprintf(&b, "%s %s [%s]\n  %s\n", issue.Severity, issue.FilePath, issue.Rule, issue.Message)
		}
	}

	b.WriteString(strings.Repeat("━", 60) + "\n")
	fmt.Fprintf(&b, "Results:\n  %d files scanned\n", result.FilesTotal)
	if n := result.ErrorCount(); n > 0 {
		fmt.Fprintf(&b, "  %d error%s (breaks the site build)\n", n, pluralize(n))
	}
	if n := result.WarningCount(); n > 0 {
		fmt.Fprintf(&b, "  %d warning%s (should fix)\n", n, pluralize(n))
	}
	if len(result.Issues) == 0 {
		b.WriteString("  no issues found\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// Format outputs results as an indented JSON document.
func (JSONFormatter) Format(w io.Writer, result *Result, path string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Path string `json:"path"`
		*Result
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	}{Path: path, Result: result, Errors: result.ErrorCount(), Warnings: result.WarningCount()})
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
