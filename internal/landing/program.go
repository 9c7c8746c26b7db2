package landing

import (
	"strconv"
	"strings"
)

// ProgramPoint is one module of the program.
type ProgramPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (p *ProgramPoint) mediaField(field string) *string {
	if field == "image" {
		return &p.Image
	}
	return nil
}

// ProgramSection describes what the workshop covers.
type ProgramSection struct {
	Visible  bool           `json:"visible"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Points   []ProgramPoint `json:"points"`
	CTAText  string         `json:"ctaText"`
	CTALink  string         `json:"ctaLink"`
	Media    string         `json:"media"`
}

func (s ProgramSection) IsVisible() bool { return s.Visible }

func defaultProgram() ProgramSection {
	return ProgramSection{
		Visible:  true,
		Title:    "The program",
		Subtitle: "Three live evenings, each with a practice to take home.",
		Points: []ProgramPoint{
			{Title: "Evening 1: The pattern", Description: "Map what keeps repeating and why."},
			{Title: "Evening 2: The signal", Description: "Build a daily reset that fits your schedule."},
			{Title: "Evening 3: The plan", Description: "Turn the insight into the next 90 days."},
		},
		CTAText: "Join the program",
		CTALink: "#invitation",
	}
}

func programDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *ProgramSection { return &d.Program }
	return NewSectionBuilder(SectionProgram, get).
		WithName("Program").
		WithDescription("Workshop outline with a call to action and media").
		WithCategory("content").
		WithIcon("list-ordered").
		AddBooleanField("visible", true).
		AddStringField("title", defaultProgram().Title).
		AddStringField("subtitle", "").
		AddStringField("ctaText", defaultProgram().CTAText).
		AddStringField("ctaLink", defaultProgram().CTALink).
		WithList(listOf("points", func(d *TemplateData) *[]ProgramPoint { return &d.Program.Points }, (*ProgramPoint).mediaField, "image")).
		WithMedia(func(d *TemplateData, field string) *string {
			if field == "media" {
				return &d.Program.Media
			}
			return nil
		}, "media").
		WithCTA(func(d *TemplateData) (string, string) { return ctaLink(d.Program.CTAText, d.Program.CTALink) }).
		WithRenderer(renderProgram).
		MustBuild()
}

func renderProgram(ctx RenderContext, prefix string, page *TemplateData) string {
	program := page.Program
	cls := func(element string) string { return className(prefix, "program-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), program.Title)
	textBlock(&sb, ctx, "p", cls("subtitle"), program.Subtitle)
	mediaBlock(&sb, page, FieldKey(SectionProgram, "media"), cls("media"), program.Title)

	if len(program.Points) > 0 {
		sb.WriteString(`<ol class="` + cls("points") + `">`)
		for i, point := range program.Points {
			sb.WriteString(`<li class="` + cls("point") + `" data-index="` + strconv.Itoa(i) + `">`)
			mediaBlock(&sb, page, ItemKey(SectionProgram, "points", i, "image"), cls("point-media"), point.Title)
			textBlock(&sb, ctx, "h3", cls("point-title"), point.Title)
			textBlock(&sb, ctx, "p", cls("point-text"), point.Description)
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ol>`)
	}

	linkButton(&sb, cls("button"), program.CTAText, program.CTALink)
	sb.WriteString(`</div>`)
	return sb.String()
}
