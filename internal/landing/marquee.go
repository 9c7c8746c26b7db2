package landing

import "strings"

// MarqueeSection is a scrolling strip of short phrases.
type MarqueeSection struct {
	Visible bool     `json:"visible"`
	Items   []string `json:"items"`
}

func (s MarqueeSection) IsVisible() bool { return s.Visible }

func defaultMarquee() MarqueeSection {
	return MarqueeSection{
		Visible: true,
		Items:   []string{"Clarity", "Alignment", "Momentum", "Calm focus", "Real results"},
	}
}

func marqueeDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *MarqueeSection { return &d.Marquee }
	return NewSectionBuilder(SectionMarquee, get).
		WithName("Marquee").
		WithDescription("Running line of short phrases").
		WithCategory("decoration").
		WithIcon("arrows-right").
		AddBooleanField("visible", true).
		WithList(listOf[string]("items", func(d *TemplateData) *[]string { return &d.Marquee.Items }, nil)).
		WithRenderer(renderMarquee).
		MustBuild()
}

func renderMarquee(ctx RenderContext, prefix string, page *TemplateData) string {
	var items []string
	for _, item := range page.Marquee.Items {
		if strings.TrimSpace(item) != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + className(prefix, "marquee-track") + `">`)
	// The strip is written twice so the CSS animation can loop seamlessly.
	for pass := 0; pass < 2; pass++ {
		for _, item := range items {
			sb.WriteString(`<span class="` + className(prefix, "marquee-item") + `">` + esc(item) + `</span>`)
		}
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
