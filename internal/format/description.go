package format

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	fence  = "```"
	indent = "    "
)

// blockState is the reformatter's position relative to code blocks.
type blockState int

const (
	stateProse blockState = iota
	stateTabbed
	stateFenced
)

func (s blockState) String() string {
	switch s {
	case stateProse:
		return "prose"
	case stateTabbed:
		return "tabbed_block"
	case stateFenced:
		return "fenced_block"
	default:
		return "unknown"
	}
}

// inlineCode matches a single-backtick code span on one line.
var inlineCode = regexp.MustCompile("`(.+?)`")

// Description rewrites a help description into MDX-friendly markup.
//
// Indented blocks become fenced blocks, fence markers always sit on their own
// line, fenced content passes through verbatim and prose is escaped except
// for the contents of inline code spans.
func Description(src string) string {
	var out []string
	state := stateProse
	for _, line := range splitLines(src) {
		var emitted []string
		state, emitted = step(state, line)
		out = append(out, emitted...)
	}
	if state == stateTabbed {
		out = append(out, fence)
	}
	return strings.ReplaceAll(strings.Join(out, "\n"), "\n\n"+fence, "\n"+fence)
}

// step consumes one source line and returns the next state and the lines to emit.
func step(state blockState, line string) (blockState, []string) {
	switch state {
	case stateTabbed:
		if strings.HasPrefix(line, indent) || line == "" {
			next := stateTabbed
			if strings.HasPrefix(line, indent+fence) {
				next = stateProse
			}
			return next, []string{strings.TrimPrefix(line, indent)}
		}
		// The block ended; the line itself is handled as if no block had been open.
		next, rest := step(stateProse, line)
		return next, append([]string{fence, ""}, rest...)

	case stateProse:
		if strings.HasPrefix(line, indent) {
			dedented := strings.TrimPrefix(line, indent)
			if strings.HasPrefix(dedented, fence) {
				return stateTabbed, []string{dedented}
			}
			return stateTabbed, []string{fence, dedented}
		}
	}

	switch {
	case strings.HasPrefix(line, fence):
		out := []string{fence}
		if rest := strings.Trim(strings.TrimLeft(line, "`"), " "); rest != "" {
			out = append(out, rest)
		}
		return toggleFence(state), out

	case strings.HasSuffix(line, fence):
		var out []string
		if rest := strings.Trim(strings.TrimRight(line, "`"), " "); rest != "" {
			out = append(out, rest)
		}
		return toggleFence(state), append(out, fence)

	case state == stateFenced:
		return state, []string{line}

	default:
		return state, []string{escapeProse(line)}
	}
}

func toggleFence(state blockState) blockState {
	if state == stateFenced {
		return stateProse
	}
	return stateFenced
}

// escapeProse escapes a prose line while keeping inline code spans literal.
func escapeProse(line string) string {
	spans := inlineCode.FindAllStringSubmatchIndex(line, -1)
	if len(spans) == 0 {
		return Escape(line)
	}

	var b strings.Builder
	last := 0
	for _, m := range spans {
		b.WriteString(Escape(line[last:m[0]]))
		b.WriteByte('`')
		b.WriteString(line[m[2]:m[3]])
		b.WriteByte('`')
		last = m[1]
	}
	b.WriteString(Escape(line[last:]))
	return b.String()
}

// splitLines breaks s at every line boundary: \n, \r\n, \r, \v, \f,
// \x1c-\x1e, U+0085, U+2028 and U+2029. A trailing line break does not yield
// a final empty line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
