package landing

import (
	"strconv"
	"strings"
)

// Logo is a partner or press mention.
type Logo struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

func (l *Logo) mediaField(field string) *string {
	if field == "image" {
		return &l.Image
	}
	return nil
}

// LogosSection shows a row of logos.
type LogosSection struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
	Logos   []Logo `json:"logos"`
}

func (s LogosSection) IsVisible() bool { return s.Visible }

func defaultLogos() LogosSection {
	return LogosSection{
		Visible: false,
		Title:   "As featured in",
		Logos:   []Logo{},
	}
}

func logosDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *LogosSection { return &d.Logos }
	return NewSectionBuilder(SectionLogos, get).
		WithName("Logos").
		WithDescription("Row of partner or press logos").
		WithCategory("social-proof").
		WithIcon("badge-check").
		AddBooleanField("visible", false).
		AddStringField("title", defaultLogos().Title).
		WithList(listOf("logos", func(d *TemplateData) *[]Logo { return &d.Logos.Logos }, (*Logo).mediaField, "image")).
		WithRenderer(renderLogos).
		MustBuild()
}

func renderLogos(ctx RenderContext, prefix string, page *TemplateData) string {
	logos := page.Logos
	cls := func(element string) string { return className(prefix, "logos-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), logos.Title)
	sb.WriteString(`<div class="` + cls("row") + `">`)
	for i, logo := range logos.Logos {
		var item strings.Builder
		mediaBlock(&item, page, ItemKey(SectionLogos, "logos", i, "image"), cls("image"), logo.Name)
		if item.Len() == 0 {
			if strings.TrimSpace(logo.Name) == "" {
				continue
			}
			item.WriteString(`<span class="` + cls("name") + `">` + esc(logo.Name) + `</span>`)
		}

		index := strconv.Itoa(i)
		if strings.TrimSpace(logo.Link) != "" {
			sb.WriteString(`<a class="` + cls("item") + `" data-index="` + index + `" href="` + esc(logo.Link) + `" rel="noopener" target="_blank">`)
			sb.WriteString(item.String())
			sb.WriteString(`</a>`)
			continue
		}
		sb.WriteString(`<div class="` + cls("item") + `" data-index="` + index + `">` + item.String() + `</div>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
