package document

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromMarkdown converts markdown into document blocks. Images found inside
// paragraphs become image blocks after the paragraph; raw HTML is dropped.
// The result is a normalized document.
func FromMarkdown(source []byte) *Node {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	conv := markdownConverter{source: source}
	doc := &Node{Type: TypeDoc, Content: conv.blocks(root)}
	return Normalize(doc)
}

type markdownConverter struct {
	source []byte
}

func (c markdownConverter) blocks(parent gmast.Node) []*Node {
	var out []*Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.block(child)...)
	}
	return out
}

func (c markdownConverter) block(n gmast.Node) []*Node {
	switch node := n.(type) {
	case *gmast.Heading:
		inline, images := c.inlines(node, nil)
		heading := &Node{Type: TypeHeading, Attrs: Attrs{"level": float64(node.Level)}, Content: inline}
		return append([]*Node{heading}, images...)
	case *gmast.Paragraph, *gmast.TextBlock:
		inline, images := c.inlines(node, nil)
		var out []*Node
		if len(inline) > 0 {
			out = append(out, &Node{Type: TypeParagraph, Content: inline})
		}
		return append(out, images...)
	case *gmast.Blockquote:
		return []*Node{{Type: TypeBlockquote, Content: c.blocks(node)}}
	case *gmast.FencedCodeBlock:
		return []*Node{c.codeBlock(node, string(node.Language(c.source)))}
	case *gmast.CodeBlock:
		return []*Node{c.codeBlock(node, "")}
	case *gmast.ThematicBreak:
		return []*Node{{Type: TypeHorizontalRule}}
	case *gmast.List:
		list := &Node{Type: TypeBulletList}
		if node.IsOrdered() {
			list = &Node{Type: TypeOrderedList, Attrs: Attrs{"start": float64(node.Start)}}
		}
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			list.Content = append(list.Content, &Node{Type: TypeListItem, Content: c.blocks(item)})
		}
		return []*Node{list}
	default:
		return nil
	}
}

func (c markdownConverter) codeBlock(n gmast.Node, language string) *Node {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(c.source))
	}
	code := strings.TrimSuffix(sb.String(), "\n")

	block := &Node{Type: TypeCodeBlock, Attrs: Attrs{"language": language}}
	if code != "" {
		block.Content = []*Node{TextNode(code)}
	}
	return block
}

// inlines converts the inline children of n. Images are returned separately
// so they can be placed as blocks.
func (c markdownConverter) inlines(n gmast.Node, marks []Mark) ([]*Node, []*Node) {
	var out, images []*Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *gmast.Text:
			value := string(node.Segment.Value(c.source))
			if value != "" {
				out = append(out, TextNode(value, cloneMarks(marks)...))
			}
			if node.HardLineBreak() {
				out = append(out, &Node{Type: TypeHardBreak})
			} else if node.SoftLineBreak() {
				out = append(out, TextNode(" ", cloneMarks(marks)...))
			}
		case *gmast.String:
			if len(node.Value) > 0 {
				out = append(out, TextNode(string(node.Value), cloneMarks(marks)...))
			}
		case *gmast.Emphasis:
			markType := MarkItalic
			if node.Level >= 2 {
				markType = MarkBold
			}
			inner, innerImages := c.inlines(node, withMark(marks, Mark{Type: markType}))
			out = append(out, inner...)
			images = append(images, innerImages...)
		case *gmast.CodeSpan:
			inner, _ := c.inlines(node, withMark(marks, Mark{Type: MarkCode}))
			out = append(out, inner...)
		case *gmast.Link:
			link := Mark{Type: MarkLink, Attrs: Attrs{"href": string(node.Destination)}}
			inner, innerImages := c.inlines(node, withMark(marks, link))
			out = append(out, inner...)
			images = append(images, innerImages...)
		case *gmast.AutoLink:
			url := string(node.URL(c.source))
			link := Mark{Type: MarkLink, Attrs: Attrs{"href": url}}
			out = append(out, TextNode(string(node.Label(c.source)), withMark(marks, link)...))
		case *gmast.Image:
			alt, _ := c.inlines(node, nil)
			var altText strings.Builder
			for _, part := range alt {
				altText.WriteString(part.Text)
			}
			images = append(images, &Node{Type: TypeImage, Attrs: Attrs{
				"src":   string(node.Destination),
				"alt":   strings.TrimSpace(altText.String()),
				"title": string(node.Title),
			}})
		}
	}
	return out, images
}

func withMark(marks []Mark, mark Mark) []Mark {
	out := cloneMarks(marks)
	return append(out, mark)
}

func cloneMarks(marks []Mark) []Mark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]Mark, len(marks))
	copy(out, marks)
	return out
}
