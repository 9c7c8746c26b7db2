package landing

import (
	"strings"
)

// HeroSection is the first screen of the page.
type HeroSection struct {
	Visible         bool     `json:"visible"`
	Badge           string   `json:"badge"`
	Headline        string   `json:"headline"`
	HighlightedWord string   `json:"highlightedWord"`
	Subheadline     string   `json:"subheadline"`
	BulletPoints    []string `json:"bulletPoints"`
	CTAText         string   `json:"ctaText"`
	CTALink         string   `json:"ctaLink"`
	Media           string   `json:"media"`
}

func (s HeroSection) IsVisible() bool { return s.Visible }

func defaultHero() HeroSection {
	return HeroSection{
		Visible:         true,
		Badge:           "Live online workshop",
		Headline:        "You're Not Matching the",
		HighlightedWord: "Frequency",
		Subheadline:     "Learn how to align what you want with what you attract in three focused evenings.",
		BulletPoints: []string{
			"Understand the patterns that keep repeating",
			"Practice a daily reset that takes ten minutes",
			"Leave with a plan for the next 90 days",
		},
		CTAText: "Reserve my spot",
		CTALink: "#invitation",
		Media:   "",
	}
}

func heroDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *HeroSection { return &d.Hero }
	return NewSectionBuilder(SectionHero, get).
		WithName("Hero").
		WithDescription("Headline with highlighted word, bullet points, call to action and media").
		WithCategory("marketing").
		WithIcon("star").
		AddBooleanField("visible", true).
		AddStringField("badge", "").
		AddStringField("headline", defaultHero().Headline).
		AddStringField("highlightedWord", defaultHero().HighlightedWord).
		AddStringField("subheadline", "").
		AddStringField("ctaText", defaultHero().CTAText).
		AddStringField("ctaLink", defaultHero().CTALink).
		WithList(listOf[string]("bulletPoints", func(d *TemplateData) *[]string { return &d.Hero.BulletPoints }, nil)).
		WithMedia(func(d *TemplateData, field string) *string {
			if field == "media" {
				return &d.Hero.Media
			}
			return nil
		}, "media").
		WithCTA(func(d *TemplateData) (string, string) { return ctaLink(d.Hero.CTAText, d.Hero.CTALink) }).
		WithRenderer(renderHero).
		MustBuild()
}

func renderHero(ctx RenderContext, prefix string, page *TemplateData) string {
	hero := page.Hero
	cls := func(element string) string { return className(prefix, "hero-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	sb.WriteString(`<div class="` + cls("content") + `">`)

	if strings.TrimSpace(hero.Badge) != "" {
		sb.WriteString(`<span class="` + cls("badge") + `">` + esc(hero.Badge) + `</span>`)
	}

	sb.WriteString(`<h1 class="` + cls("title") + `">` + ctx.SanitizeHTML(hero.Headline))
	if strings.TrimSpace(hero.HighlightedWord) != "" {
		sb.WriteString(` <span class="` + cls("highlight") + `">` + esc(hero.HighlightedWord) + `</span>`)
	}
	sb.WriteString(`</h1>`)

	textBlock(&sb, ctx, "p", cls("subtitle"), hero.Subheadline)
	bulletList(&sb, ctx, cls("bullets"), hero.BulletPoints)
	linkButton(&sb, cls("button"), hero.CTAText, hero.CTALink)
	sb.WriteString(`</div>`)

	mediaBlock(&sb, page, FieldKey(SectionHero, "media"), cls("media"), hero.Headline)

	sb.WriteString(`</div>`)
	return sb.String()
}
