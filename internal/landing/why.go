package landing

import (
	"strconv"
	"strings"
)

// WhyPoint is one reason in the "why" section.
type WhyPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (p *WhyPoint) mediaField(field string) *string {
	if field == "image" {
		return &p.Image
	}
	return nil
}

// WhySection lists the reasons to join.
type WhySection struct {
	Visible  bool       `json:"visible"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Points   []WhyPoint `json:"points"`
}

func (s WhySection) IsVisible() bool { return s.Visible }

func defaultWhy() WhySection {
	return WhySection{
		Visible:  true,
		Title:    "Why this works",
		Subtitle: "Three shifts that change how the rest of your week feels.",
		Points: []WhyPoint{
			{Title: "You notice the pattern", Description: "Name what keeps happening instead of fighting it."},
			{Title: "You change the signal", Description: "Small daily practices add up to a different baseline."},
			{Title: "You keep the momentum", Description: "A simple plan keeps the change going after the workshop."},
		},
	}
}

func whyDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *WhySection { return &d.Why }
	return NewSectionBuilder(SectionWhy, get).
		WithName("Why").
		WithDescription("Title with a grid of reasons, each with an optional image").
		WithCategory("content").
		WithIcon("lightbulb").
		AddBooleanField("visible", true).
		AddStringField("title", defaultWhy().Title).
		AddStringField("subtitle", "").
		WithList(listOf("points", func(d *TemplateData) *[]WhyPoint { return &d.Why.Points }, (*WhyPoint).mediaField, "image")).
		WithRenderer(renderWhy).
		MustBuild()
}

func renderWhy(ctx RenderContext, prefix string, page *TemplateData) string {
	why := page.Why
	cls := func(element string) string { return className(prefix, "why-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), why.Title)
	textBlock(&sb, ctx, "p", cls("subtitle"), why.Subtitle)

	if len(why.Points) > 0 {
		sb.WriteString(`<div class="` + cls("grid") + `">`)
		for i, point := range why.Points {
			sb.WriteString(`<article class="` + cls("point") + `" data-index="` + strconv.Itoa(i) + `">`)
			mediaBlock(&sb, page, ItemKey(SectionWhy, "points", i, "image"), cls("point-media"), point.Title)
			textBlock(&sb, ctx, "h3", cls("point-title"), point.Title)
			textBlock(&sb, ctx, "p", cls("point-text"), point.Description)
			sb.WriteString(`</article>`)
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String()
}
