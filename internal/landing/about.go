package landing

import "strings"

// AboutSection introduces the host.
type AboutSection struct {
	Visible     bool     `json:"visible"`
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Bio         string   `json:"bio"`
	Image       string   `json:"image"`
	Credentials []string `json:"credentials"`
}

func (s AboutSection) IsVisible() bool { return s.Visible }

func defaultAbout() AboutSection {
	return AboutSection{
		Visible: true,
		Title:   "About your host",
		Name:    "Alex Morgan",
		Bio:     "Coach and facilitator helping people build calm, intentional routines for more than ten years.",
		Credentials: []string{
			"Certified coach",
			"2,000+ workshop participants",
		},
	}
}

func aboutDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *AboutSection { return &d.About }
	return NewSectionBuilder(SectionAbout, get).
		WithName("About").
		WithDescription("Host portrait, bio and credentials").
		WithCategory("content").
		WithIcon("user").
		AddBooleanField("visible", true).
		AddStringField("title", defaultAbout().Title).
		AddStringField("name", "").
		AddStringField("bio", "").
		WithList(listOf[string]("credentials", func(d *TemplateData) *[]string { return &d.About.Credentials }, nil)).
		WithMedia(func(d *TemplateData, field string) *string {
			if field == "image" {
				return &d.About.Image
			}
			return nil
		}, "image").
		WithRenderer(renderAbout).
		MustBuild()
}

func renderAbout(ctx RenderContext, prefix string, page *TemplateData) string {
	about := page.About
	cls := func(element string) string { return className(prefix, "about-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	mediaBlock(&sb, page, FieldKey(SectionAbout, "image"), cls("media"), about.Name)
	sb.WriteString(`<div class="` + cls("content") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), about.Title)
	textBlock(&sb, ctx, "h3", cls("name"), about.Name)
	textBlock(&sb, ctx, "p", cls("bio"), about.Bio)
	bulletList(&sb, ctx, cls("credentials"), about.Credentials)
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
