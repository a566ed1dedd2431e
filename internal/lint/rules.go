package lint

import (
	"bytes"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/refgen/internal/frontmatter"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Rule names.
const (
	RuleRawBrace       = "raw-brace"
	RuleUnclosedFence  = "unclosed-fence"
	RuleEmptyCodeBlock = "empty-code-block"
	RuleFingerprint    = "fingerprint-mismatch"
)

// BraceRule reports literal curly braces in prose. MDX evaluates them as
// JavaScript expressions, so prose must carry &#123; and &#125; instead.
type BraceRule struct{}

func (BraceRule) Name() string { return RuleRawBrace }

func (BraceRule) Check(page Page) []Issue {
	body := page.Body
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var issues []Issue
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.CodeSpan, *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		case *gmast.Paragraph:
			if isESMParagraph(node, body) {
				return gmast.WalkSkipChildren, nil
			}
		case *gmast.Text:
			seg := node.Segment
			if bytes.ContainsAny(seg.Value(body), "{}") {
				issues = append(issues, Issue{
					FilePath: page.Path,
					Severity: SeverityError,
					Rule:     RuleRawBrace,
					Message:  "literal curly brace in prose; MDX will evaluate it as an expression",
					Line:     page.LineOffset + lineAt(body, seg.Start),
				})
			}
		}
		return gmast.WalkContinue, nil
	})
	return issues
}

// isESMParagraph reports whether a paragraph is an MDX import/export statement.
func isESMParagraph(p *gmast.Paragraph, body []byte) bool {
	lines := p.Lines()
	if lines.Len() == 0 {
		return false
	}
	seg := lines.At(0)
	first := seg.Value(body)
	return bytes.HasPrefix(first, []byte("import ")) || bytes.HasPrefix(first, []byte("export "))
}

// FenceRule checks that every ``` fence is closed and that no fenced block is empty.
type FenceRule struct{}

func (FenceRule) Name() string { return RuleUnclosedFence }

func (FenceRule) Check(page Page) []Issue {
	var issues []Issue
	open := 0
	lines := strings.Split(string(page.Body), "\n")
	for i, line := range lines {
		if !isFenceLine(line) {
			continue
		}
		if open == 0 {
			open = i + 1
			continue
		}
		if open == i {
			issues = append(issues, Issue{
				FilePath: page.Path,
				Severity: SeverityWarning,
				Rule:     RuleEmptyCodeBlock,
				Message:  "fenced code block has no content",
				Line:     page.LineOffset + open,
			})
		}
		open = 0
	}
	if open != 0 {
		issues = append(issues, Issue{
			FilePath: page.Path,
			Severity: SeverityError,
			Rule:     RuleUnclosedFence,
			Message:  "code fence is never closed",
			Line:     page.LineOffset + open,
		})
	}
	return issues
}

// isFenceLine reports whether line opens or closes a backtick fence (up to
// three spaces of indentation, as CommonMark allows).
func isFenceLine(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	return strings.HasPrefix(trimmed, "```")
}

// lineAt returns the 1-based line number of offset in body.
func lineAt(body []byte, offset int) int {
	if offset > len(body) {
		offset = len(body)
	}
	return bytes.Count(body[:offset], []byte("\n")) + 1
}

// FingerprintRule reports pages whose stored fingerprint no longer matches
// their content, which means the page was edited by hand and the next
// generate run will overwrite it. Pages without frontmatter are skipped.
type FingerprintRule struct{}

func (FingerprintRule) Name() string { return RuleFingerprint }

func (FingerprintRule) Check(page Page) []Issue {
	if !page.HasFrontmatter {
		return nil
	}
	stored, computed, ok, err := frontmatter.Verify(page.Content)
	switch {
	case err != nil:
		return []Issue{{
			FilePath: page.Path,
			Severity: SeverityError,
			Rule:     RuleFingerprint,
			Message:  fmt.Sprintf("unreadable frontmatter: %v", err),
			Line:     1,
		}}
	case stored == "":
		return []Issue{{
			FilePath: page.Path,
			Severity: SeverityWarning,
			Rule:     RuleFingerprint,
			Message:  "frontmatter has no fingerprint",
			Line:     1,
		}}
	case !ok:
		return []Issue{{
			FilePath: page.Path,
			Severity: SeverityWarning,
			Rule:     RuleFingerprint,
			Message:  fmt.Sprintf("page was modified after generation (stored %s, computed %s)", stored, computed),
			Line:     1,
		}}
	}
	return nil
}
