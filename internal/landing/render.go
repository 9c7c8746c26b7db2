package landing

import (
	"strings"

	"landing-builder-backend/pkg/validator"
)

// DefaultPrefix is the CSS class prefix used when RenderOptions.Prefix is empty.
const DefaultPrefix = "landing"

// RenderOptions controls page rendering.
type RenderOptions struct {
	Prefix string
	// Preview marks sections with data attributes for the editing surface.
	// The markup is otherwise identical to the public page.
	Preview bool
}

// Render renders a full template page: visible sections in sectionOrder
// followed by the floating button. Unknown keys in the order are skipped.
func Render(ctx RenderContext, d TemplateData, opts RenderOptions) string {
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	reg := DefaultRegistry()

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `" style="` + colorVariables(prefix, d.Colors) + `"`)
	if opts.Preview {
		sb.WriteString(` data-preview="true"`)
	}
	sb.WriteString(`>`)

	for _, key := range d.SectionOrder {
		desc, ok := reg.Get(key)
		if !ok || !desc.Visible(&d) {
			continue
		}
		body := desc.Renderer(ctx, prefix, &d)
		if body == "" {
			continue
		}
		sb.WriteString(`<section id="` + esc(string(key)) + `" class="` + className(prefix, "section") + ` ` + className(prefix, string(key)) + `"`)
		if opts.Preview {
			sb.WriteString(` data-section-key="` + esc(string(key)) + `"`)
		}
		sb.WriteString(`>`)
		sb.WriteString(body)
		sb.WriteString(`</section>`)
	}

	if text, link, ok := d.FloatingCTA(); ok {
		sb.WriteString(`<div class="` + className(prefix, "floating") + `"`)
		if opts.Preview {
			sb.WriteString(` data-floating-source="` + esc(string(d.FloatingButton.Section)) + `"`)
		}
		sb.WriteString(`>`)
		linkButton(&sb, className(prefix, "floating-button"), text, link)
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String()
}

// colorVariables emits the colors as CSS custom properties. Values that are
// not hex colors fall back to the defaults.
func colorVariables(prefix string, colors TemplateColors) string {
	defaults := defaultColors()
	var sb strings.Builder
	for _, slot := range ColorSlots {
		value, _ := colors.Get(slot)
		if !validator.IsHexColor(value) {
			value, _ = defaults.Get(slot)
		}
		sb.WriteString("--" + prefix + "-" + cssName(string(slot)) + ":" + value + ";")
	}
	return sb.String()
}

// cssName converts heroBg to hero-bg.
func cssName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
