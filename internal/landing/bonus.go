package landing

import (
	"strconv"
	"strings"
)

// BonusItem is an extra included with registration.
type BonusItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Value       string `json:"value"`
	Image       string `json:"image"`
}

func (b *BonusItem) mediaField(field string) *string {
	if field == "image" {
		return &b.Image
	}
	return nil
}

// BonusSection lists the bonuses.
type BonusSection struct {
	Visible  bool        `json:"visible"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Items    []BonusItem `json:"items"`
}

func (s BonusSection) IsVisible() bool { return s.Visible }

func defaultBonus() BonusSection {
	return BonusSection{
		Visible:  true,
		Title:    "Bonuses for registering today",
		Subtitle: "",
		Items: []BonusItem{
			{Title: "Workbook", Description: "Printable exercises for every evening.", Value: "$29"},
			{Title: "Recordings", Description: "Watch any evening again for 30 days.", Value: "$49"},
		},
	}
}

func bonusDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *BonusSection { return &d.Bonus }
	return NewSectionBuilder(SectionBonus, get).
		WithName("Bonus").
		WithDescription("Extras with an optional value and image").
		WithCategory("marketing").
		WithIcon("gift").
		AddBooleanField("visible", true).
		AddStringField("title", defaultBonus().Title).
		AddStringField("subtitle", "").
		WithList(listOf("items", func(d *TemplateData) *[]BonusItem { return &d.Bonus.Items }, (*BonusItem).mediaField, "image")).
		WithRenderer(renderBonus).
		MustBuild()
}

func renderBonus(ctx RenderContext, prefix string, page *TemplateData) string {
	bonus := page.Bonus
	cls := func(element string) string { return className(prefix, "bonus-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), bonus.Title)
	textBlock(&sb, ctx, "p", cls("subtitle"), bonus.Subtitle)
	sb.WriteString(`<div class="` + cls("list") + `">`)
	for i, item := range bonus.Items {
		sb.WriteString(`<article class="` + cls("item") + `" data-index="` + strconv.Itoa(i) + `">`)
		mediaBlock(&sb, page, ItemKey(SectionBonus, "items", i, "image"), cls("item-media"), item.Title)
		textBlock(&sb, ctx, "h3", cls("item-title"), item.Title)
		textBlock(&sb, ctx, "p", cls("item-text"), item.Description)
		if strings.TrimSpace(item.Value) != "" {
			sb.WriteString(`<span class="` + cls("item-value") + `">` + esc(item.Value) + `</span>`)
		}
		sb.WriteString(`</article>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
