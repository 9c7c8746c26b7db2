package document

import (
	"html/template"
	"strconv"
	"strings"

	"landing-builder-backend/pkg/media"
)

// RenderContext exposes the minimal capabilities required by the renderer.
type RenderContext interface {
	// SanitizeHTML should clean potentially unsafe markup before rendering.
	SanitizeHTML(input string) string
}

// Render renders a document inside a container styled by settings. The
// document is expected to be normalized. When ctx is not nil the generated
// markup is passed through ctx.SanitizeHTML.
func Render(ctx RenderContext, doc *Node, settings Settings) string {
	settings = settings.Clamp()

	var body strings.Builder
	if doc != nil {
		for _, child := range doc.Content {
			renderNode(&body, child)
		}
	}
	html := body.String()
	if ctx != nil {
		html = ctx.SanitizeHTML(html)
	}

	style := "max-width:" + strconv.Itoa(settings.MaxWidth) + "px;padding:" + strconv.Itoa(settings.Padding) + "px;margin:0 auto;"
	if settings.BackgroundColor != "" {
		style += "background-color:" + settings.BackgroundColor + ";"
	}
	return `<div class="landing-content" style="` + style + `">` + html + `</div>`
}

func esc(value string) string {
	return template.HTMLEscapeString(value)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func renderChildren(sb *strings.Builder, n *Node) {
	for _, child := range n.Content {
		renderNode(sb, child)
	}
}

func renderNode(sb *strings.Builder, n *Node) {
	switch n.Type {
	case TypeParagraph:
		sb.WriteString(`<p` + alignStyle(n.Attrs.String("textAlign")) + `>`)
		renderChildren(sb, n)
		sb.WriteString(`</p>`)
	case TypeHeading:
		level := int(n.Attrs.Number("level"))
		if level < 1 || level > 6 {
			level = 2
		}
		tag := "h" + strconv.Itoa(level)
		sb.WriteString(`<` + tag + alignStyle(n.Attrs.String("textAlign")) + `>`)
		renderChildren(sb, n)
		sb.WriteString(`</` + tag + `>`)
	case TypeText:
		renderText(sb, n)
	case TypeHardBreak:
		sb.WriteString(`<br>`)
	case TypeBlockquote:
		sb.WriteString(`<blockquote>`)
		renderChildren(sb, n)
		sb.WriteString(`</blockquote>`)
	case TypeCodeBlock:
		sb.WriteString(`<pre><code`)
		if lang := n.Attrs.String("language"); lang != "" {
			sb.WriteString(` class="language-` + esc(lang) + `"`)
		}
		sb.WriteString(`>` + esc(n.TextContent()) + `</code></pre>`)
	case TypeHorizontalRule:
		sb.WriteString(`<hr>`)
	case TypeBulletList:
		sb.WriteString(`<ul>`)
		renderChildren(sb, n)
		sb.WriteString(`</ul>`)
	case TypeOrderedList:
		start := int(n.Attrs.Number("start"))
		if start != 1 {
			sb.WriteString(`<ol start="` + strconv.Itoa(start) + `">`)
		} else {
			sb.WriteString(`<ol>`)
		}
		renderChildren(sb, n)
		sb.WriteString(`</ol>`)
	case TypeListItem:
		sb.WriteString(`<li>`)
		renderChildren(sb, n)
		sb.WriteString(`</li>`)
	case TypeImage:
		renderImage(sb, n)
	case TypeResizableImage:
		renderResizableImage(sb, n)
	case TypeYouTube:
		renderYouTube(sb, n)
	case TypeCustomButton:
		renderButton(sb, n)
	case TypeTwoColumnSection:
		renderTwoColumn(sb, n)
	case TypeColumnMedia, TypeColumnContent:
		renderChildren(sb, n)
	case TypePageSection:
		renderPageSection(sb, n)
	}
}

func renderText(sb *strings.Builder, n *Node) {
	marks := make(map[MarkType]Mark, len(n.Marks))
	for _, mark := range n.Marks {
		marks[mark.Type] = mark
	}

	var closing []string
	for _, markType := range markOrder {
		mark, ok := marks[markType]
		if !ok {
			continue
		}
		openTag, closeTag := markTags(mark)
		if openTag == "" {
			continue
		}
		sb.WriteString(openTag)
		closing = append(closing, closeTag)
	}
	sb.WriteString(esc(n.Text))
	for i := len(closing) - 1; i >= 0; i-- {
		sb.WriteString(closing[i])
	}
}

func markTags(mark Mark) (string, string) {
	switch mark.Type {
	case MarkBold:
		return `<strong>`, `</strong>`
	case MarkItalic:
		return `<em>`, `</em>`
	case MarkUnderline:
		return `<u>`, `</u>`
	case MarkStrike:
		return `<s>`, `</s>`
	case MarkCode:
		return `<code>`, `</code>`
	case MarkHighlight:
		if color := mark.Attrs.String("color"); isColor(color) {
			return `<mark style="background-color:` + color + `">`, `</mark>`
		}
		return `<mark>`, `</mark>`
	case MarkTextStyle:
		if color := mark.Attrs.String("color"); isColor(color) {
			return `<span style="color:` + color + `">`, `</span>`
		}
		return "", ""
	case MarkLink:
		href := safeURL(mark.Attrs.String("href"))
		if href == "" {
			return "", ""
		}
		open := `<a href="` + esc(href) + `"`
		if mark.Attrs.String("target") == "_blank" {
			open += ` target="_blank" rel="noopener noreferrer"`
		}
		return open + `>`, `</a>`
	default:
		return "", ""
	}
}

func renderImage(sb *strings.Builder, n *Node) {
	src := safeURL(n.Attrs.String("src"))
	if src == "" {
		return
	}
	sb.WriteString(`<img src="` + esc(src) + `" alt="` + esc(n.Attrs.String("alt")) + `"`)
	if title := n.Attrs.String("title"); title != "" {
		sb.WriteString(` title="` + esc(title) + `"`)
	}
	sb.WriteString(` loading="lazy">`)
}

func renderResizableImage(sb *strings.Builder, n *Node) {
	src := safeURL(n.Attrs.String("src"))
	if src == "" {
		return
	}
	width := n.Attrs.String("width")
	if !isCSSLength(width) {
		width = "100%"
	}
	sb.WriteString(`<figure class="resizable-image resizable-image--` + esc(n.Attrs.String("align")) + `" style="width:` + width + `">`)
	sb.WriteString(`<img src="` + esc(src) + `" alt="` + esc(n.Attrs.String("alt")) + `" loading="lazy">`)
	sb.WriteString(`</figure>`)
}

func renderYouTube(sb *strings.Builder, n *Node) {
	opts := media.Options{Autoplay: n.Attrs.Bool("autoplay"), Mute: n.Attrs.Bool("mute")}
	renderable, ok := media.Resolve(n.Attrs.String("src"), opts)
	if !ok || renderable.Kind != media.KindYouTube {
		return
	}
	width := formatNumber(n.Attrs.Number("width"))
	sb.WriteString(`<div class="video-embed" style="max-width:` + width + `px">`)
	sb.WriteString(renderable.HTML("video-embed__frame", ""))
	sb.WriteString(`</div>`)
}

func renderButton(sb *strings.Builder, n *Node) {
	attrs := n.Attrs
	variant := attrs.String("variant")

	var style strings.Builder
	background := attrs.String("backgroundColor")
	border := attrs.String("borderColor")
	textColor := attrs.String("textColor")
	switch variant {
	case "outline":
		border, background = background, "transparent"
		textColor = border
	case "ghost":
		background, border = "transparent", "transparent"
	}
	writeColor(&style, "background-color", background)
	writeColor(&style, "color", textColor)
	if isColor(border) {
		style.WriteString("border:1px solid " + border + ";")
	}
	style.WriteString("border-radius:" + formatNumber(attrs.Number("borderRadius")) + "px;")
	style.WriteString("padding:" + formatNumber(attrs.Number("paddingY")) + "px " + formatNumber(attrs.Number("paddingX")) + "px;")
	if attrs.Bool("shadow") {
		style.WriteString("box-shadow:0 4px 14px rgba(0,0,0,0.15);")
	}
	if attrs.String("width") == "full" {
		style.WriteString("display:block;width:100%;")
	} else {
		style.WriteString("display:inline-block;")
	}

	class := `content-button__link content-button__link--` + esc(variant)
	sb.WriteString(`<div class="content-button"` + alignStyle(attrs.String("align")) + `>`)
	// A bare fragment does not survive sanitizing, so an unlinked button is a span.
	href := safeURL(attrs.String("href"))
	if href == "" || href == "#" {
		sb.WriteString(`<span class="` + class + `" style="` + style.String() + `">`)
		sb.WriteString(esc(attrs.String("text")))
		sb.WriteString(`</span></div>`)
		return
	}
	sb.WriteString(`<a class="` + class + `" href="` + esc(href) + `" style="` + style.String() + `">`)
	sb.WriteString(esc(attrs.String("text")))
	sb.WriteString(`</a></div>`)
}

func renderTwoColumn(sb *strings.Builder, n *Node) {
	var mediaColumn, contentColumn *Node
	for _, child := range n.Content {
		switch child.Type {
		case TypeColumnMedia:
			mediaColumn = child
		case TypeColumnContent:
			contentColumn = child
		}
	}

	position := n.Attrs.String("mediaPosition")
	align := map[string]string{"top": "flex-start", "center": "center", "bottom": "flex-end"}[n.Attrs.String("verticalAlign")]
	if align == "" {
		align = "center"
	}

	var style strings.Builder
	style.WriteString("display:flex;gap:" + formatNumber(n.Attrs.Number("gap")) + "px;align-items:" + align + ";")
	writeColor(&style, "background-color", n.Attrs.String("backgroundColor"))

	mediaWidth := formatNumber(n.Attrs.Number("mediaWidth"))
	writeMedia := func() {
		sb.WriteString(`<div class="two-column__media" style="flex:0 0 ` + mediaWidth + `%">`)
		if mediaColumn != nil {
			renderChildren(sb, mediaColumn)
		}
		sb.WriteString(`</div>`)
	}
	writeContent := func() {
		sb.WriteString(`<div class="two-column__content" style="flex:1 1 0">`)
		if contentColumn != nil {
			renderChildren(sb, contentColumn)
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`<div class="two-column two-column--media-` + esc(position) + `" style="` + style.String() + `">`)
	if position == "right" {
		writeContent()
		writeMedia()
	} else {
		writeMedia()
		writeContent()
	}
	sb.WriteString(`</div>`)
}

func renderPageSection(sb *strings.Builder, n *Node) {
	var style strings.Builder
	writeColor(&style, "background-color", n.Attrs.String("backgroundColor"))
	writeColor(&style, "color", n.Attrs.String("textColor"))
	style.WriteString("padding:" + formatNumber(n.Attrs.Number("paddingY")) + "px 0;")

	inner := "margin:0 auto;"
	if !n.Attrs.Bool("fullWidth") {
		inner += "max-width:" + formatNumber(n.Attrs.Number("maxWidth")) + "px;"
	}

	sb.WriteString(`<section class="page-section" style="` + style.String() + `">`)
	sb.WriteString(`<div class="page-section__inner" style="` + inner + `">`)
	renderChildren(sb, n)
	sb.WriteString(`</div></section>`)
}

func writeColor(sb *strings.Builder, property, value string) {
	if isColor(value) {
		sb.WriteString(property + ":" + value + ";")
	}
}

func alignStyle(align string) string {
	switch align {
	case "center", "right", "justify":
		return ` style="text-align:` + align + `"`
	default:
		return ""
	}
}

func isCSSLength(value string) bool {
	if value == "auto" {
		return true
	}
	for _, unit := range []string{"px", "%", "rem", "em"} {
		if number, ok := strings.CutSuffix(value, unit); ok {
			_, err := strconv.ParseFloat(number, 64)
			return err == nil && number != ""
		}
	}
	return false
}

// safeURL returns url when it is relative or uses an allowed scheme, else "".
func safeURL(url string) string {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:", "/", "#", "./", "../"} {
		if strings.HasPrefix(lower, prefix) {
			return trimmed
		}
	}
	colon := strings.Index(lower, ":")
	if colon < 0 {
		return trimmed
	}
	if slash := strings.IndexAny(lower, "/?#"); slash >= 0 && slash < colon {
		return trimmed
	}
	return ""
}
