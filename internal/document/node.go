package document

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// Attrs holds node or mark attributes. Numbers are float64, as decoded from JSON.
type Attrs map[string]any

// Mark is an inline annotation on a text node.
type Mark struct {
	Type  MarkType `json:"type"`
	Attrs Attrs    `json:"attrs,omitempty"`
}

// Node is one node of a document tree in the editor's JSON shape.
type Node struct {
	Type    NodeType `json:"type"`
	Attrs   Attrs    `json:"attrs,omitempty"`
	Content []*Node  `json:"content,omitempty"`
	Text    string   `json:"text,omitempty"`
	Marks   []Mark   `json:"marks,omitempty"`
}

// Path addresses a node by child indexes from the root. The empty path is the root.
type Path []int

// Parent returns the path of the parent node.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// Last returns the index of the node within its parent.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprint(idx)
	}
	return "/" + strings.Join(parts, "/")
}

// Empty returns a document holding a single empty paragraph.
func Empty() *Node {
	return &Node{Type: TypeDoc, Content: []*Node{{Type: TypeParagraph, Attrs: defaultAttrs(schema[TypeParagraph].Attrs)}}}
}

// TextNode returns a text node with the given marks.
func TextNode(text string, marks ...Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

// New creates a node of type t with default attributes overlaid by attrs and
// the children its content rule requires.
func New(t NodeType, attrs Attrs, content ...*Node) (*Node, error) {
	spec, ok := schema[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, t)
	}
	n := &Node{Type: t, Attrs: mergeAttrs(spec.Attrs, defaultAttrs(spec.Attrs), attrs)}
	if !spec.Leaf {
		for _, child := range content {
			if child != nil && allows(spec, child.Type) {
				n.Content = append(n.Content, child)
			}
		}
		fill(n)
	}
	return n, nil
}

func mustNew(t NodeType, attrs Attrs, content ...*Node) *Node {
	n, err := New(t, attrs, content...)
	if err != nil {
		panic(err)
	}
	return n
}

// fill adds the children required by n's content rule.
func fill(n *Node) {
	rule := schema[n.Type].Content
	if len(rule.Sequence) > 0 {
		children := make([]*Node, 0, len(rule.Sequence))
		for _, t := range rule.Sequence {
			var found *Node
			for _, child := range n.Content {
				if child.Type == t {
					found = child
					break
				}
			}
			if found == nil {
				found = mustNew(t, nil)
			}
			children = append(children, found)
		}
		n.Content = children
		return
	}
	if rule.Max > 0 && len(n.Content) > rule.Max {
		n.Content = n.Content[:rule.Max]
	}
	for len(n.Content) < rule.Min && rule.Fill != "" {
		n.Content = append(n.Content, mustNew(rule.Fill, nil))
	}
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Text: n.Text, Attrs: cloneAttrs(n.Attrs)}
	if n.Marks != nil {
		out.Marks = make([]Mark, len(n.Marks))
		for i, mark := range n.Marks {
			out.Marks[i] = Mark{Type: mark.Type, Attrs: cloneAttrs(mark.Attrs)}
		}
	}
	if n.Content != nil {
		out.Content = make([]*Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = child.Clone()
		}
	}
	return out
}

func cloneAttrs(attrs Attrs) Attrs {
	if attrs == nil {
		return nil
	}
	return maps.Clone(attrs)
}

// At returns the node at path, or nil when the path does not exist.
func (n *Node) At(path Path) *Node {
	current := n
	for _, idx := range path {
		if current == nil || idx < 0 || idx >= len(current.Content) {
			return nil
		}
		current = current.Content[idx]
	}
	return current
}

// resolve returns the longest prefix of path that addresses an existing node.
func (n *Node) resolve(path Path) Path {
	current := n
	for depth, idx := range path {
		if idx < 0 || idx >= len(current.Content) {
			return slices.Clone(path[:depth])
		}
		current = current.Content[idx]
	}
	return slices.Clone(path)
}

// Walk calls fn for every node in document order. Returning false skips the
// node's children.
func (n *Node) Walk(fn func(node *Node, path Path) bool) {
	var walk func(node *Node, path Path)
	walk = func(node *Node, path Path) {
		if !fn(node, path) {
			return
		}
		for i, child := range node.Content {
			walk(child, append(slices.Clone(path), i))
		}
	}
	if n != nil {
		walk(n, Path{})
	}
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(node *Node, _ Path) bool {
		if node.Type == TypeText {
			sb.WriteString(node.Text)
		}
		return true
	})
	return sb.String()
}

// String returns the string attribute name, or "".
func (a Attrs) String(name string) string {
	value, _ := a[name].(string)
	return value
}

// Number returns the numeric attribute name, or 0.
func (a Attrs) Number(name string) float64 {
	value, _ := toNumber(a[name])
	return value
}

// Bool returns the boolean attribute name, or false.
func (a Attrs) Bool(name string) bool {
	value, _ := a[name].(bool)
	return value
}

func isEmptyParagraph(n *Node) bool {
	return n != nil && n.Type == TypeParagraph && len(n.Content) == 0
}

func defaultAttrs(specs []AttrSpec) Attrs {
	if len(specs) == 0 {
		return nil
	}
	out := make(Attrs, len(specs))
	for _, spec := range specs {
		out[spec.Name] = spec.Default
	}
	return out
}

// mergeAttrs overlays patch onto base. Keys the spec does not declare and
// values of the wrong kind are ignored.
func mergeAttrs(specs []AttrSpec, base, patch Attrs) Attrs {
	if len(specs) == 0 {
		return nil
	}
	out := make(Attrs, len(specs))
	for _, spec := range specs {
		out[spec.Name] = spec.Default
		if value, ok := coerceAttr(spec, base[spec.Name]); ok {
			out[spec.Name] = value
		}
		if value, ok := coerceAttr(spec, patch[spec.Name]); ok {
			out[spec.Name] = value
		}
	}
	return out
}

func coerceAttr(spec AttrSpec, value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	switch spec.Kind {
	case AttrString:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		if len(spec.Enum) > 0 && !slices.Contains(spec.Enum, s) {
			return nil, false
		}
		return s, true
	case AttrNumber:
		f, ok := toNumber(value)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		if spec.Min != nil && f < *spec.Min {
			f = *spec.Min
		}
		if spec.Max != nil && f > *spec.Max {
			f = *spec.Max
		}
		return f, true
	case AttrBool:
		b, ok := value.(bool)
		return b, ok
	default:
		return nil, false
	}
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Parse decodes a document from JSON and normalizes it against the schema.
func Parse(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return Normalize(&n), nil
}
