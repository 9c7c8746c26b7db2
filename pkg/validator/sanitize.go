package validator

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicy   *bluemonday.Policy
	richTextPolicy *bluemonday.Policy
	policyOnce     sync.Once

	cssValue      = regexp.MustCompile(`^[a-zA-Z0-9#%.,()\s-]+$`)
	youTubeEmbed  = regexp.MustCompile(`^https://www\.youtube(?:-nocookie)?\.com/embed/[A-Za-z0-9_-]+(?:\?[A-Za-z0-9_=&]*)?$`)
	classNames    = regexp.MustCompile(`^[a-zA-Z0-9_\s-]+$`)
	styledElement = []string{"a", "div", "section", "figure", "p", "h1", "h2", "h3", "h4", "h5", "h6", "mark", "span"}
)

func policies() {
	policyOnce.Do(func() {
		inlinePolicy = bluemonday.UGCPolicy()
		inlinePolicy.AllowElements("u", "s", "sub", "sup", "mark")

		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "sub", "sup", "mark", "section", "figure", "div", "span")
		p.AllowDataAttributes()
		p.AllowAttrs("class").Matching(classNames).Globally()
		p.AllowAttrs("target").Matching(regexp.MustCompile(`^_(?:blank|self)$`)).OnElements("a")
		p.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")
		p.AllowStyles(
			"color", "background-color", "border", "border-radius", "padding", "margin",
			"max-width", "width", "display", "gap", "align-items", "flex", "text-align", "box-shadow",
		).Matching(cssValue).OnElements(styledElement...)

		p.AllowElements("iframe")
		p.AllowAttrs("src").Matching(youTubeEmbed).OnElements("iframe")
		p.AllowAttrs("title", "frameborder", "allow", "allowfullscreen").OnElements("iframe")
		richTextPolicy = p
	})
}

// Sanitizer cleans markup with one of the package policies. It satisfies the
// RenderContext interfaces of both page renderers.
type Sanitizer struct {
	policy func() *bluemonday.Policy
}

// InlineSanitizer keeps basic user formatting. It is used for text fields of
// template sections.
func InlineSanitizer() Sanitizer {
	return Sanitizer{policy: func() *bluemonday.Policy {
		policies()
		return inlinePolicy
	}}
}

// RichTextSanitizer also keeps the layout markup of free-form documents:
// sections, styled buttons and YouTube embeds.
func RichTextSanitizer() Sanitizer {
	return Sanitizer{policy: func() *bluemonday.Policy {
		policies()
		return richTextPolicy
	}}
}

func (s Sanitizer) SanitizeHTML(input string) string {
	if input == "" {
		return ""
	}
	if s.policy == nil {
		return bluemonday.StrictPolicy().Sanitize(input)
	}
	return s.policy().Sanitize(input)
}

// SanitizeHTML cleans inline user markup.
func SanitizeHTML(html string) string {
	return InlineSanitizer().SanitizeHTML(html)
}
