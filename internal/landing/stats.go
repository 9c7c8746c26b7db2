package landing

import "strings"

// Stat is a single number with a label.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatsSection shows headline numbers.
type StatsSection struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
	Stats   []Stat `json:"stats"`
}

func (s StatsSection) IsVisible() bool { return s.Visible }

func defaultStats() StatsSection {
	return StatsSection{
		Visible: true,
		Title:   "",
		Stats: []Stat{
			{Value: "2,000+", Label: "participants"},
			{Value: "4.9", Label: "average rating"},
			{Value: "3", Label: "live evenings"},
		},
	}
}

func statsDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *StatsSection { return &d.Stats }
	return NewSectionBuilder(SectionStats, get).
		WithName("Stats").
		WithDescription("Row of headline numbers").
		WithCategory("social-proof").
		WithIcon("chart-bar").
		AddBooleanField("visible", true).
		AddStringField("title", "").
		WithList(listOf[Stat]("stats", func(d *TemplateData) *[]Stat { return &d.Stats.Stats }, nil)).
		WithRenderer(renderStats).
		MustBuild()
}

func renderStats(ctx RenderContext, prefix string, page *TemplateData) string {
	stats := page.Stats
	cls := func(element string) string { return className(prefix, "stats-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), stats.Title)
	sb.WriteString(`<dl class="` + cls("list") + `">`)
	for _, stat := range stats.Stats {
		if strings.TrimSpace(stat.Value) == "" && strings.TrimSpace(stat.Label) == "" {
			continue
		}
		sb.WriteString(`<div class="` + cls("item") + `">`)
		sb.WriteString(`<dt class="` + cls("value") + `">` + esc(stat.Value) + `</dt>`)
		sb.WriteString(`<dd class="` + cls("label") + `">` + esc(stat.Label) + `</dd>`)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</dl>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
