package landing

import "strings"

// FooterLink is a link in the footer.
type FooterLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// FooterSection closes the page.
type FooterSection struct {
	Visible   bool         `json:"visible"`
	Text      string       `json:"text"`
	Copyright string       `json:"copyright"`
	Links     []FooterLink `json:"links"`
	CTAText   string       `json:"ctaText"`
	CTALink   string       `json:"ctaLink"`
}

func (s FooterSection) IsVisible() bool { return s.Visible }

func defaultFooter() FooterSection {
	return FooterSection{
		Visible:   true,
		Text:      "Questions? Write to us any time.",
		Copyright: "All rights reserved.",
		Links: []FooterLink{
			{Label: "Privacy policy", URL: "/privacy"},
			{Label: "Terms", URL: "/terms"},
		},
		CTAText: "Register now",
		CTALink: "#invitation",
	}
}

func footerDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *FooterSection { return &d.Footer }
	return NewSectionBuilder(SectionFooter, get).
		WithName("Footer").
		WithDescription("Closing text, links and a final call to action").
		WithCategory("layout").
		WithIcon("layout-bottom").
		AddBooleanField("visible", true).
		AddStringField("text", "").
		AddStringField("copyright", defaultFooter().Copyright).
		AddStringField("ctaText", defaultFooter().CTAText).
		AddStringField("ctaLink", defaultFooter().CTALink).
		WithList(listOf[FooterLink]("links", func(d *TemplateData) *[]FooterLink { return &d.Footer.Links }, nil)).
		WithCTA(func(d *TemplateData) (string, string) { return ctaLink(d.Footer.CTAText, d.Footer.CTALink) }).
		WithRenderer(renderFooter).
		MustBuild()
}

func renderFooter(ctx RenderContext, prefix string, page *TemplateData) string {
	footer := page.Footer
	cls := func(element string) string { return className(prefix, "footer-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	linkButton(&sb, cls("button"), footer.CTAText, footer.CTALink)
	textBlock(&sb, ctx, "p", cls("text"), footer.Text)

	if len(footer.Links) > 0 {
		sb.WriteString(`<nav class="` + cls("links") + `">`)
		for _, link := range footer.Links {
			if strings.TrimSpace(link.Label) == "" {
				continue
			}
			linkButton(&sb, cls("link"), link.Label, link.URL)
		}
		sb.WriteString(`</nav>`)
	}

	textBlock(&sb, ctx, "small", cls("copyright"), footer.Copyright)
	sb.WriteString(`</div>`)
	return sb.String()
}
