package format

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"git.home.luguber.info/inful/refgen/internal/redact"
)

// Value renders an option default as a single display line.
//
// Sequences and mappings with exactly one element render as one-line JSON
// with sorted keys. Other sequences and mappings render as indented JSON whose
// newlines are collapsed into the two characters `\n`. Anything else renders
// as text, has the redactor's paths replaced, and has literal `\n` sequences
// doubled. Redaction never touches the JSON path.
func Value(v any, r *redact.Redactor) string {
	if n, ok := collectionLen(v); ok {
		var b strings.Builder
		if n == 1 {
			writeJSON(&b, normalize(v), "", 0)
			return b.String()
		}
		writeJSON(&b, normalize(v), "  ", 0)
		return strings.ReplaceAll(b.String(), "\n", `\n`)
	}
	s := r.Apply(Scalar(v))
	return strings.ReplaceAll(s, `\n`, `\\n`)
}

// Scalar converts a non-collection value to the text the reference has
// always shown: booleans as True/False, null as None, numbers by their literal.
func Scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case json.Number:
		return x.String()
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func collectionLen(v any) (int, bool) {
	switch x := v.(type) {
	case []any:
		return len(x), true
	case map[string]any:
		return len(x), true
	case nil, string, json.Number:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// normalize converts typed slices and maps into the []any / map[string]any
// shapes writeJSON understands.
func normalize(v any) any {
	switch v.(type) {
	case []any, map[string]any:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	var out any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return fmt.Sprint(v)
	}
	return out
}

// writeJSON serializes v with sorted keys. With an empty indent it emits one
// line using ", " and ": " separators; otherwise one element per line.
func writeJSON(b *strings.Builder, v any, indent string, level int) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case json.Number:
		b.WriteString(x.String())
	case float64:
		b.WriteString(formatFloat(x))
	case string:
		writeJSONString(b, x)
	case []any:
		if len(x) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range x {
			writeSeparator(b, i, indent, level+1)
			writeJSON(b, item, indent, level+1)
		}
		writeClose(b, ']', indent, level)
	case map[string]any:
		if len(x) == 0 {
			b.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			writeSeparator(b, i, indent, level+1)
			writeJSONString(b, k)
			b.WriteString(": ")
			writeJSON(b, x[k], indent, level+1)
		}
		writeClose(b, '}', indent, level)
	default:
		writeJSON(b, normalize(v), indent, level)
	}
}

func writeSeparator(b *strings.Builder, i int, indent string, level int) {
	if indent == "" {
		if i > 0 {
			b.WriteString(", ")
		}
		return
	}
	if i > 0 {
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(indent, level))
}

func writeClose(b *strings.Builder, c byte, indent string, level int) {
	if indent != "" {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(indent, level))
	}
	b.WriteByte(c)
}

// writeJSONString quotes s as ASCII-only JSON.
func writeJSONString(b *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r < 0x20 || r > 0x7e:
			if r > 0xffff {
				r1, r2 := utf16.EncodeRune(r)
				writeUnicodeEscape(b, r1, hex)
				writeUnicodeEscape(b, r2, hex)
				continue
			}
			if r == utf8.RuneError {
				r = 0xfffd
			}
			writeUnicodeEscape(b, r, hex)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune, hex string) {
	b.WriteString(`\u`)
	b.WriteByte(hex[(r>>12)&0xf])
	b.WriteByte(hex[(r>>8)&0xf])
	b.WriteByte(hex[(r>>4)&0xf])
	b.WriteByte(hex[r&0xf])
}
