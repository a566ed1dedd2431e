// Package frontmatter writes and reads the YAML frontmatter block at the top
// of generated reference pages.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the page body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. CRLF documents are accepted.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte(delimiter+"\r\n")) {
		nl = []byte("\r\n")
	}
	open := append([]byte(delimiter), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Join prefixes body with fm wrapped in `---` lines. An empty fm yields body unchanged.
func Join(fm []byte, body []byte) []byte {
	if len(fm) == 0 {
		return body
	}
	out := make([]byte, 0, len(fm)+len(body)+2*len(delimiter)+2)
	out = append(out, delimiter+"\n"...)
	out = append(out, fm...)
	if !bytes.HasSuffix(fm, []byte("\n")) {
		out = append(out, '\n')
	}
	out = append(out, delimiter+"\n"...)
	return append(out, body...)
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(fm) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
