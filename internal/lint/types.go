package lint

import "path/filepath"

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but don't break the site build.
	SeverityWarning Severity = iota + 1
	// SeverityError indicates issues that will make the MDX compiler fail or misrender.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue represents a single linting problem found in a page.
type Issue struct {
	FilePath string   `json:"file"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"` // 0 if page-level issue
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue `json:"issues"`
	FilesTotal int     `json:"files_total"`
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Page is one reference page handed to the rules.
type Page struct {
	Path    string
	Content []byte
	// Body is Content without its frontmatter block.
	Body []byte
	// LineOffset is the number of lines preceding Body in Content.
	LineOffset int
	// HasFrontmatter reports whether Content starts with a frontmatter block.
	HasFrontmatter bool
}

// Rule defines a check applied to one page.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	Check(page Page) []Issue
}

// IsPageFile returns true if path has one of the page extensions.
func IsPageFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".mdx" || ext == ".md"
}
