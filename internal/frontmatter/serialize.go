package frontmatter

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Field is one frontmatter key and its value.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered frontmatter mapping; pages keep title first.
type Fields []Field

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends it.
func (f Fields) Set(key string, value any) Fields {
	for i := range f {
		if f[i].Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Key: key, Value: value})
}

// Without returns a copy of f minus the given keys.
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, 0, len(f))
next:
	for _, field := range f {
		for _, k := range keys {
			if field.Key == k {
				continue next
			}
		}
		out = append(out, field)
	}
	return out
}

// SerializeYAML serializes fields in order as YAML (without delimiters).
// Empty fields serialize to an empty slice.
func SerializeYAML(fields Fields) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		val, err := scalarNode(f.Value)
		if err != nil {
			return nil, fmt.Errorf("frontmatter field %q: %w", f.Key, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}, val)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalarNode(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: vv}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(vv)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(vv)}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ParseFields parses a YAML mapping into ordered fields. Scalars decode as
// string, bool, int or nil; sequences of scalars decode as []string.
func ParseFields(fm []byte) (Fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return Fields{}, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a mapping")
	}

	m := doc.Content[0]
	fields := make(Fields, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		val, err := nodeValue(m.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("frontmatter field %q: %w", m.Content[i].Value, err)
		}
		fields = append(fields, Field{Key: m.Content[i].Value, Value: val})
	}
	return fields, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			return strconv.ParseBool(n.Value)
		case "!!int":
			return strconv.Atoi(n.Value)
		default:
			return n.Value, nil
		}
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("nested sequences are not supported")
			}
			items = append(items, c.Value)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}
