package content

import (
	"html"

	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
)

// RenderOptions selects sanitisers and preview mode for Render.
type RenderOptions struct {
	// Inline cleans text fields of template sections.
	Inline landing.RenderContext
	// RichText cleans the markup of a free-form document. May be nil.
	RichText document.RenderContext
	Prefix   string
	Preview  bool
}

// Render renders the page in whichever mode it is in.
func Render(c Content, opts RenderOptions) string {
	switch v := c.(type) {
	case Template:
		inline := opts.Inline
		if inline == nil {
			inline = escapeText{}
		}
		return landing.Render(inline, v.Data, landing.RenderOptions{Prefix: opts.Prefix, Preview: opts.Preview})
	case FreeForm:
		return document.Render(opts.RichText, v.Document, v.Settings)
	default:
		return ""
	}
}

// escapeText renders text fields literally when no sanitiser is configured.
type escapeText struct{}

func (escapeText) SanitizeHTML(input string) string {
	return html.EscapeString(input)
}
