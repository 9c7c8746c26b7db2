// Package document implements the rich-content document used by free-form
// landing pages: a closed set of node kinds with their attributes and nesting
// rules, structural editing relative to a selection, markdown import and HTML
// rendering.
package document

import (
	"encoding/json"
	"slices"
)

// NodeType is the kind of a document node.
type NodeType string

const (
	TypeDoc              NodeType = "doc"
	TypeParagraph        NodeType = "paragraph"
	TypeHeading          NodeType = "heading"
	TypeText             NodeType = "text"
	TypeHardBreak        NodeType = "hardBreak"
	TypeBlockquote       NodeType = "blockquote"
	TypeCodeBlock        NodeType = "codeBlock"
	TypeHorizontalRule   NodeType = "horizontalRule"
	TypeBulletList       NodeType = "bulletList"
	TypeOrderedList      NodeType = "orderedList"
	TypeListItem         NodeType = "listItem"
	TypeImage            NodeType = "image"
	TypeResizableImage   NodeType = "resizableImage"
	TypeYouTube          NodeType = "youtube"
	TypeCustomButton     NodeType = "customButton"
	TypeTwoColumnSection NodeType = "twoColumnSection"
	TypeColumnMedia      NodeType = "columnMedia"
	TypeColumnContent    NodeType = "columnContent"
	TypePageSection      NodeType = "pageSection"
)

// Content groups referenced by content rules.
const (
	GroupBlock   = "block"
	GroupSection = "section"
	GroupInline  = "inline"
	GroupMedia   = "media"
)

// AttrKind is the JSON kind of an attribute value.
type AttrKind string

const (
	AttrString AttrKind = "string"
	AttrNumber AttrKind = "number"
	AttrBool   AttrKind = "boolean"
)

// AttrSpec declares one attribute of a node or mark.
type AttrSpec struct {
	Name    string   `json:"name"`
	Kind    AttrKind `json:"kind"`
	Default any      `json:"default"`
	Enum    []string `json:"enum,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// ContentRule constrains the children of a node. Sequence, when set, fixes the
// exact child types in order and overrides the other fields.
type ContentRule struct {
	Allow    []string   `json:"allow,omitempty"`
	Min      int        `json:"min"`
	Max      int        `json:"max,omitempty"`
	Sequence []NodeType `json:"sequence,omitempty"`
	// Fill is the node type created to satisfy Min.
	Fill NodeType `json:"fill,omitempty"`
}

// Spec describes one node kind.
type Spec struct {
	Type    NodeType    `json:"type"`
	Groups  []string    `json:"groups,omitempty"`
	Content ContentRule `json:"content"`
	Attrs   []AttrSpec  `json:"attrs,omitempty"`
	Leaf    bool        `json:"leaf"`
	// PlainText nodes hold text without marks.
	PlainText bool `json:"plain_text,omitempty"`
	// Insertable kinds can be created with Insert.
	Insertable bool `json:"insertable"`
	// Targetable kinds can be matched by nearest-ancestor operations.
	Targetable bool `json:"targetable"`
}

func (s Spec) inGroup(group string) bool {
	return slices.Contains(s.Groups, group)
}

func (s Spec) attr(name string) (AttrSpec, bool) {
	for _, attr := range s.Attrs {
		if attr.Name == name {
			return attr, true
		}
	}
	return AttrSpec{}, false
}

func num(v float64) *float64 { return &v }

var blockContent = []string{GroupBlock}

var schema = map[NodeType]Spec{
	TypeDoc: {
		Type:    TypeDoc,
		Content: ContentRule{Allow: []string{GroupBlock, GroupSection}, Min: 1, Fill: TypeParagraph},
	},
	TypeParagraph: {
		Type:       TypeParagraph,
		Groups:     []string{GroupBlock},
		Content:    ContentRule{Allow: []string{GroupInline}},
		Attrs:      []AttrSpec{{Name: "textAlign", Kind: AttrString, Default: "left", Enum: []string{"left", "center", "right", "justify"}}},
		Insertable: true,
	},
	TypeHeading: {
		Type:    TypeHeading,
		Groups:  []string{GroupBlock},
		Content: ContentRule{Allow: []string{GroupInline}},
		Attrs: []AttrSpec{
			{Name: "level", Kind: AttrNumber, Default: float64(2), Min: num(1), Max: num(6)},
			{Name: "textAlign", Kind: AttrString, Default: "left", Enum: []string{"left", "center", "right", "justify"}},
		},
		Insertable: true,
	},
	TypeText: {
		Type:   TypeText,
		Groups: []string{GroupInline},
		Leaf:   true,
	},
	TypeHardBreak: {
		Type:   TypeHardBreak,
		Groups: []string{GroupInline},
		Leaf:   true,
	},
	TypeBlockquote: {
		Type:       TypeBlockquote,
		Groups:     []string{GroupBlock},
		Content:    ContentRule{Allow: blockContent, Min: 1, Fill: TypeParagraph},
		Insertable: true,
		Targetable: true,
	},
	TypeCodeBlock: {
		Type:       TypeCodeBlock,
		Groups:     []string{GroupBlock},
		Content:    ContentRule{Allow: []string{string(TypeText)}},
		Attrs:      []AttrSpec{{Name: "language", Kind: AttrString, Default: ""}},
		PlainText:  true,
		Insertable: true,
		Targetable: true,
	},
	TypeHorizontalRule: {
		Type:       TypeHorizontalRule,
		Groups:     []string{GroupBlock},
		Leaf:       true,
		Insertable: true,
		Targetable: true,
	},
	TypeBulletList: {
		Type:       TypeBulletList,
		Groups:     []string{GroupBlock},
		Content:    ContentRule{Allow: []string{string(TypeListItem)}, Min: 1, Fill: TypeListItem},
		Insertable: true,
	},
	TypeOrderedList: {
		Type:       TypeOrderedList,
		Groups:     []string{GroupBlock},
		Content:    ContentRule{Allow: []string{string(TypeListItem)}, Min: 1, Fill: TypeListItem},
		Attrs:      []AttrSpec{{Name: "start", Kind: AttrNumber, Default: float64(1), Min: num(0)}},
		Insertable: true,
	},
	TypeListItem: {
		Type:    TypeListItem,
		Content: ContentRule{Allow: blockContent, Min: 1, Fill: TypeParagraph},
	},
	TypeImage: {
		Type:   TypeImage,
		Groups: []string{GroupBlock, GroupMedia},
		Leaf:   true,
		Attrs: []AttrSpec{
			{Name: "src", Kind: AttrString, Default: ""},
			{Name: "alt", Kind: AttrString, Default: ""},
			{Name: "title", Kind: AttrString, Default: ""},
		},
		Insertable: true,
		Targetable: true,
	},
	TypeResizableImage: {
		Type:   TypeResizableImage,
		Groups: []string{GroupBlock, GroupMedia},
		Leaf:   true,
		Attrs: []AttrSpec{
			{Name: "src", Kind: AttrString, Default: ""},
			{Name: "alt", Kind: AttrString, Default: ""},
			{Name: "width", Kind: AttrString, Default: "100%"},
			{Name: "align", Kind: AttrString, Default: "center", Enum: []string{"left", "center", "right"}},
		},
		Insertable: true,
		Targetable: true,
	},
	TypeYouTube: {
		Type:   TypeYouTube,
		Groups: []string{GroupBlock, GroupMedia},
		Leaf:   true,
		Attrs: []AttrSpec{
			{Name: "src", Kind: AttrString, Default: ""},
			{Name: "width", Kind: AttrNumber, Default: float64(640), Min: num(0)},
			{Name: "height", Kind: AttrNumber, Default: float64(360), Min: num(0)},
			{Name: "autoplay", Kind: AttrBool, Default: false},
			{Name: "mute", Kind: AttrBool, Default: true},
		},
		Insertable: true,
		Targetable: true,
	},
	TypeCustomButton: {
		Type:   TypeCustomButton,
		Groups: []string{GroupBlock},
		Leaf:   true,
		Attrs: []AttrSpec{
			{Name: "text", Kind: AttrString, Default: "Button"},
			{Name: "href", Kind: AttrString, Default: ""},
			{Name: "backgroundColor", Kind: AttrString, Default: "#7c3aed"},
			{Name: "textColor", Kind: AttrString, Default: "#ffffff"},
			{Name: "borderColor", Kind: AttrString, Default: "transparent"},
			{Name: "borderRadius", Kind: AttrNumber, Default: float64(8), Min: num(0), Max: num(999)},
			{Name: "paddingX", Kind: AttrNumber, Default: float64(24), Min: num(0), Max: num(200)},
			{Name: "paddingY", Kind: AttrNumber, Default: float64(12), Min: num(0), Max: num(200)},
			{Name: "align", Kind: AttrString, Default: "left", Enum: []string{"left", "center", "right"}},
			{Name: "shadow", Kind: AttrBool, Default: false},
			{Name: "width", Kind: AttrString, Default: "auto", Enum: []string{"auto", "full"}},
			{Name: "variant", Kind: AttrString, Default: "solid", Enum: []string{"solid", "outline", "ghost"}},
		},
		Insertable: true,
		Targetable: true,
	},
	TypeTwoColumnSection: {
		Type:    TypeTwoColumnSection,
		Groups:  []string{GroupSection},
		Content: ContentRule{Sequence: []NodeType{TypeColumnMedia, TypeColumnContent}},
		Attrs: []AttrSpec{
			{Name: "mediaPosition", Kind: AttrString, Default: "left", Enum: []string{"left", "right"}},
			{Name: "mediaWidth", Kind: AttrNumber, Default: float64(50), Min: num(10), Max: num(90)},
			{Name: "gap", Kind: AttrNumber, Default: float64(32), Min: num(0), Max: num(200)},
			{Name: "verticalAlign", Kind: AttrString, Default: "center", Enum: []string{"top", "center", "bottom"}},
			{Name: "backgroundColor", Kind: AttrString, Default: ""},
		},
		Insertable: true,
		Targetable: true,
	},
	TypeColumnMedia: {
		Type:    TypeColumnMedia,
		Content: ContentRule{Allow: []string{GroupMedia}, Max: 1},
	},
	TypeColumnContent: {
		Type:    TypeColumnContent,
		Content: ContentRule{Allow: blockContent, Min: 1, Fill: TypeParagraph},
	},
	TypePageSection: {
		Type:    TypePageSection,
		Groups:  []string{GroupSection},
		Content: ContentRule{Allow: []string{GroupBlock, string(TypeTwoColumnSection)}, Min: 1, Fill: TypeParagraph},
		Attrs: []AttrSpec{
			{Name: "backgroundColor", Kind: AttrString, Default: ""},
			{Name: "textColor", Kind: AttrString, Default: ""},
			{Name: "paddingY", Kind: AttrNumber, Default: float64(48), Min: num(0), Max: num(400)},
			{Name: "maxWidth", Kind: AttrNumber, Default: float64(1200), Min: num(320), Max: num(2400)},
			{Name: "fullWidth", Kind: AttrBool, Default: false},
		},
		Insertable: true,
		Targetable: true,
	},
}

// MarkType is the kind of an inline text mark.
type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkUnderline MarkType = "underline"
	MarkStrike    MarkType = "strike"
	MarkCode      MarkType = "code"
	MarkHighlight MarkType = "highlight"
	MarkTextStyle MarkType = "textStyle"
	MarkLink      MarkType = "link"
)

// markOrder is the nesting order used when rendering, outermost first.
var markOrder = []MarkType{MarkLink, MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkCode, MarkHighlight, MarkTextStyle}

var markAttrs = map[MarkType][]AttrSpec{
	MarkBold:      nil,
	MarkItalic:    nil,
	MarkUnderline: nil,
	MarkStrike:    nil,
	MarkCode:      nil,
	MarkHighlight: {{Name: "color", Kind: AttrString, Default: ""}},
	MarkTextStyle: {{Name: "color", Kind: AttrString, Default: ""}},
	MarkLink: {
		{Name: "href", Kind: AttrString, Default: ""},
		{Name: "target", Kind: AttrString, Default: "", Enum: []string{"", "_blank", "_self"}},
	},
}

// Lookup returns the spec of a node type.
func Lookup(t NodeType) (Spec, bool) {
	spec, ok := schema[t]
	return spec, ok
}

// Targetable lists the node types matched by nearest-ancestor operations.
func Targetable() []NodeType {
	var out []NodeType
	for t, spec := range schema {
		if spec.Targetable {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}

// Insertable lists the node types that Insert accepts.
func Insertable() []NodeType {
	var out []NodeType
	for t, spec := range schema {
		if spec.Insertable {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}

// Specs returns every node spec sorted by type, for the builder UI.
func Specs() []Spec {
	out := make([]Spec, 0, len(schema))
	for _, spec := range schema {
		out = append(out, spec)
	}
	slices.SortFunc(out, func(a, b Spec) int {
		switch {
		case a.Type < b.Type:
			return -1
		case a.Type > b.Type:
			return 1
		}
		return 0
	})
	return out
}

// MarshalSchemaJSON returns the node specs as JSON.
func MarshalSchemaJSON() ([]byte, error) {
	return json.Marshal(Specs())
}

// allows reports whether a node of type child may appear in parent's content.
func allows(parent Spec, child NodeType) bool {
	if len(parent.Content.Sequence) > 0 {
		return slices.Contains(parent.Content.Sequence, child)
	}
	childSpec, ok := schema[child]
	if !ok {
		return false
	}
	for _, allowed := range parent.Content.Allow {
		if allowed == string(child) || childSpec.inGroup(allowed) {
			return true
		}
	}
	return false
}

// satisfied reports whether n's direct children meet its content rule.
func satisfied(n *Node) bool {
	spec, ok := schema[n.Type]
	if !ok {
		return false
	}
	rule := spec.Content
	if len(rule.Sequence) > 0 {
		if len(n.Content) != len(rule.Sequence) {
			return false
		}
		for i, child := range n.Content {
			if child.Type != rule.Sequence[i] {
				return false
			}
		}
		return true
	}
	if len(n.Content) < rule.Min {
		return false
	}
	return rule.Max == 0 || len(n.Content) <= rule.Max
}

func hasRoom(n *Node) bool {
	spec := schema[n.Type]
	if len(spec.Content.Sequence) > 0 {
		return false
	}
	return spec.Content.Max == 0 || len(n.Content) < spec.Content.Max
}
