package document

import (
	"testing"
)

func TestFromMarkdown(t *testing.T) {
	source := "# Launch\n\n" +
		"Join **now** and read the [guide](https://example.com).\n\n" +
		"![Cover](/cover.png)\n\n" +
		"> quoted\n\n" +
		"```go\nfmt.Println(1)\n```\n\n" +
		"---\n\n" +
		"3. third\n4. fourth\n"

	doc := FromMarkdown([]byte(source))
	if err := Validate(doc); err != nil {
		t.Fatalf("converted document is invalid: %v", err)
	}

	var types []NodeType
	for _, child := range doc.Content {
		types = append(types, child.Type)
	}
	want := []NodeType{TypeHeading, TypeParagraph, TypeImage, TypeBlockquote, TypeCodeBlock, TypeHorizontalRule, TypeOrderedList}
	if len(types) != len(want) {
		t.Fatalf("expected blocks %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("expected blocks %v, got %v", want, types)
		}
	}

	if level := doc.Content[0].Attrs.Number("level"); level != 1 {
		t.Fatalf("expected heading level 1, got %v", level)
	}

	var bold, link bool
	for _, text := range doc.Content[1].Content {
		for _, mark := range text.Marks {
			switch {
			case mark.Type == MarkBold && text.Text == "now":
				bold = true
			case mark.Type == MarkLink && mark.Attrs.String("href") == "https://example.com":
				link = true
			}
		}
	}
	if !bold || !link {
		t.Fatalf("expected bold and link marks, got %+v", doc.Content[1].Content)
	}

	image := doc.Content[2]
	if image.Attrs.String("src") != "/cover.png" || image.Attrs.String("alt") != "Cover" {
		t.Fatalf("unexpected image attrs %+v", image.Attrs)
	}

	code := doc.Content[4]
	if code.Attrs.String("language") != "go" || code.TextContent() != "fmt.Println(1)" {
		t.Fatalf("unexpected code block %+v", code)
	}

	list := doc.Content[6]
	if list.Attrs.Number("start") != 3 || len(list.Content) != 2 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestFromMarkdown_Empty(t *testing.T) {
	doc := FromMarkdown(nil)
	if len(doc.Content) != 1 || !isEmptyParagraph(doc.Content[0]) {
		t.Fatalf("expected an empty document")
	}
}
