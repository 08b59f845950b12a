// Package frontmatter splits markdown files into a YAML header and a body,
// and writes them back.
//
// Parsing fails soft: anything that is not a well-formed leading YAML
// mapping between '---' lines is treated as "no front matter" and the whole
// text is returned as the body.
package frontmatter

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// DateLayout is used when YAML decodes a bare date.
const DateLayout = "2006-01-02"

// Bounds returns the line indices of the opening and closing delimiters.
// ok is false when the first line is not '---' or no closing line exists.
func Bounds(lines []string) (start, end int, ok bool) {
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return 0, -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == delimiter {
			return 0, i, true
		}
	}
	return 0, -1, false
}

// Parse extracts front matter and body from text.
func Parse(text string) (Fields, string) {
	lines := strings.Split(text, "\n")
	_, end, ok := Bounds(lines)
	if !ok {
		return NewFields(), text
	}

	header := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
		return NewFields(), text
	}
	// Empty header: front matter present but with no keys.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewFields(), body
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return NewFields(), text
	}

	fields := NewFields()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		fields.Set(key, valueFromNode(root.Content[i+1]))
	}
	return fields, body
}

// Serialize renders fields and body. Empty fields produce body unchanged.
func Serialize(fields Fields, body string) string {
	if fields.Len() == 0 {
		return body
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range fields.keys {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			nodeFromValue(fields.values[k]),
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		// Encoding hand-built scalar nodes does not fail in practice; fall
		// back to the body rather than emitting a broken header.
		return body
	}
	_ = enc.Close()

	return delimiter + "\n" + buf.String() + delimiter + "\n" + body
}

func valueFromNode(n *yaml.Node) Value {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarValue(n)
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			v := valueFromNode(item)
			if v.IsNull() {
				continue
			}
			items = append(items, v.Text())
		}
		return List(items)
	default:
		out, err := yaml.Marshal(n)
		if err != nil {
			return Null()
		}
		return String(strings.TrimSpace(string(out)))
	}
}

func scalarValue(n *yaml.Node) Value {
	switch n.ShortTag() {
	case "!!null":
		return Null()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return Bool(b)
		}
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return Number(f)
		}
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
				return String(t.Format(DateLayout))
			}
			return String(t.Format(time.RFC3339))
		}
	}
	return String(n.Value)
}

func nodeFromValue(v Value) *yaml.Node {
	switch v.kind {
	case KindString:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
		if strings.Contains(v.str, "\n") {
			n.Style = yaml.DoubleQuotedStyle
		}
		return n
	case KindNumber:
		tag := "!!float"
		s := formatNumber(v.num)
		if !strings.ContainsAny(s, ".eE") {
			// Integers outside int64 would not decode back as !!int.
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				tag = "!!int"
			} else {
				s = strconv.FormatFloat(v.num, 'e', -1, 64)
			}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s}
	case KindBool:
		s := "false"
		if v.b {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range v.list {
			n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item}
			if strings.Contains(item, "\n") {
				n.Style = yaml.DoubleQuotedStyle
			}
			seq.Content = append(seq.Content, n)
		}
		return seq
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
