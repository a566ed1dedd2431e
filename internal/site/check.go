package site

import (
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
)

// Drift is one page whose content on disk differs from a fresh rendering.
type Drift struct {
	Path string
	Diff string
}

// CheckReport lists the differences between disk and a fresh rendering.
type CheckReport struct {
	Missing []string
	Changed []Drift
	Extra   []string
}

// Clean reports whether the tree on disk is up to date.
func (r *CheckReport) Clean() bool {
	return r.Count() == 0
}

// Count returns the number of files that differ.
func (r *CheckReport) Count() int {
	return len(r.Missing) + len(r.Changed) + len(r.Extra)
}

// Write prints the report with unified diffs for changed files.
func (r *CheckReport) Write(w io.Writer) error {
	for _, p := range r.Missing {
		if _, err := fmt.Fprintf(w, "missing: %s\n", p); err != nil {
			return err
		}
	}
	for _, p := range r.Extra {
		if _, err := fmt.Fprintf(w, "extra: %s\n", p); err != nil {
			return err
		}
	}
	for _, d := range r.Changed {
		if _, err := fmt.Fprintf(w, "changed: %s\n%s", d.Path, d.Diff); err != nil {
			return err
		}
	}
	return nil
}

func unifiedDiff(rel string, got, want []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(got)),
		B:        difflib.SplitLines(string(want)),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", rel, err)
	}
	return diff, nil
}
