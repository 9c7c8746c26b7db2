package document

import (
	"errors"
	"testing"
)

func TestValidate_RejectsSchemaViolations(t *testing.T) {
	cases := map[string]*Node{
		"nil":            nil,
		"non-doc root":   {Type: TypeParagraph},
		"empty doc":      {Type: TypeDoc},
		"unknown node":   {Type: TypeDoc, Content: []*Node{{Type: "table"}}},
		"inline at root": {Type: TypeDoc, Content: []*Node{TextNode("loose")}},
		"bad enum": {Type: TypeDoc, Content: []*Node{
			{Type: TypeParagraph, Attrs: Attrs{"textAlign": "diagonal"}},
		}},
		"unknown attr": {Type: TypeDoc, Content: []*Node{
			{Type: TypeHorizontalRule, Attrs: Attrs{"color": "#fff"}},
		}},
		"columns swapped": {Type: TypeDoc, Content: []*Node{{Type: TypeTwoColumnSection, Content: []*Node{
			{Type: TypeColumnContent, Content: []*Node{{Type: TypeParagraph}}},
			{Type: TypeColumnMedia},
		}}}},
		"two media": {Type: TypeDoc, Content: []*Node{{Type: TypeTwoColumnSection, Content: []*Node{
			{Type: TypeColumnMedia, Content: []*Node{{Type: TypeImage}, {Type: TypeImage}}},
			{Type: TypeColumnContent, Content: []*Node{{Type: TypeParagraph}}},
		}}}},
		"section in column": {Type: TypeDoc, Content: []*Node{{Type: TypeTwoColumnSection, Content: []*Node{
			{Type: TypeColumnMedia},
			{Type: TypeColumnContent, Content: []*Node{{Type: TypePageSection, Content: []*Node{{Type: TypeParagraph}}}}},
		}}}},
		"marked code": {Type: TypeDoc, Content: []*Node{{Type: TypeCodeBlock, Content: []*Node{
			TextNode("x", Mark{Type: MarkBold}),
		}}}},
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := Validate(doc); !errors.Is(err, ErrSchemaViolation) {
				t.Fatalf("expected schema violation, got %v", err)
			}
		})
	}
}

func TestNormalize_RepairsDocument(t *testing.T) {
	raw := []byte(`{
		"type": "doc",
		"content": [
			{"type": "text", "text": "stray"},
			{"type": "table", "content": [{"type": "paragraph"}]},
			{"type": "heading", "attrs": {"level": 9}, "content": [
				{"type": "text", "text": "Title", "marks": [{"type": "bold"}, {"type": "sparkle"}, {"type": "bold"}]}
			]},
			{"type": "twoColumnSection", "attrs": {"mediaPosition": "right"}, "content": [
				{"type": "columnContent"},
				{"type": "columnMedia", "content": [{"type": "youtube", "attrs": {"src": "https://youtu.be/x"}}]}
			]},
			{"type": "pageSection"}
		]
	}`)

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(doc); err != nil {
		t.Fatalf("normalized document is invalid: %v", err)
	}

	if len(doc.Content) != 4 {
		t.Fatalf("expected 4 top-level blocks, got %d", len(doc.Content))
	}
	if doc.Content[0].Type != TypeParagraph || doc.Content[0].TextContent() != "stray" {
		t.Fatalf("expected stray text to be wrapped in a paragraph")
	}

	heading := doc.Content[1]
	if heading.Attrs.Number("level") != 6 {
		t.Fatalf("expected heading level to be clamped, got %v", heading.Attrs["level"])
	}
	if marks := heading.Content[0].Marks; len(marks) != 1 || marks[0].Type != MarkBold {
		t.Fatalf("expected one bold mark, got %+v", marks)
	}

	section := doc.Content[2]
	if section.Content[0].Type != TypeColumnMedia || section.Content[1].Type != TypeColumnContent {
		t.Fatalf("expected columns in media-content order")
	}
	if section.Content[0].Content[0].Attrs.Bool("mute") != true {
		t.Fatalf("expected youtube defaults to be filled")
	}
	if len(section.Content[1].Content) != 1 {
		t.Fatalf("expected empty column content to receive a paragraph")
	}

	if page := doc.Content[3]; len(page.Content) != 1 || page.Content[0].Type != TypeParagraph {
		t.Fatalf("expected page section to be filled")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := FromMarkdown([]byte("# Title\n\nSome *text*.\n\n- one\n- two\n"))
	once := Normalize(doc)
	twice := Normalize(once)

	if Render(nil, once, DefaultSettings()) != Render(nil, twice, DefaultSettings()) {
		t.Fatalf("expected normalize to be idempotent")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"type":`)); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestNormalize_NilDocument(t *testing.T) {
	doc := Normalize(nil)
	if err := Validate(doc); err != nil {
		t.Fatalf("expected a valid empty document, got %v", err)
	}
	if len(doc.Content) != 1 || !isEmptyParagraph(doc.Content[0]) {
		t.Fatalf("expected a single empty paragraph")
	}
}
