package landing

import (
	"strconv"
	"strings"
)

// Testimonial is a quote from a past participant.
type Testimonial struct {
	Quote string `json:"quote"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

func (t *Testimonial) mediaField(field string) *string {
	if field == "image" {
		return &t.Image
	}
	return nil
}

// TestimonialsSection lists participant quotes.
type TestimonialsSection struct {
	Visible bool          `json:"visible"`
	Title   string        `json:"title"`
	Items   []Testimonial `json:"items"`
}

func (s TestimonialsSection) IsVisible() bool { return s.Visible }

func defaultTestimonials() TestimonialsSection {
	return TestimonialsSection{
		Visible: true,
		Title:   "What participants say",
		Items: []Testimonial{
			{Quote: "I finally understood why the same things kept happening to me.", Name: "Maria", Role: "Designer"},
			{Quote: "Practical, warm and surprisingly simple.", Name: "Daniel", Role: "Founder"},
		},
	}
}

func testimonialsDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *TestimonialsSection { return &d.Testimonials }
	return NewSectionBuilder(SectionTestimonials, get).
		WithName("Testimonials").
		WithDescription("Participant quotes with name, role and photo").
		WithCategory("social-proof").
		WithIcon("chat-quote").
		AddBooleanField("visible", true).
		AddStringField("title", defaultTestimonials().Title).
		WithList(listOf("items", func(d *TemplateData) *[]Testimonial { return &d.Testimonials.Items }, (*Testimonial).mediaField, "image")).
		WithRenderer(renderTestimonials).
		MustBuild()
}

func renderTestimonials(ctx RenderContext, prefix string, page *TemplateData) string {
	section := page.Testimonials
	cls := func(element string) string { return className(prefix, "testimonials-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), section.Title)
	sb.WriteString(`<div class="` + cls("list") + `">`)
	for i, item := range section.Items {
		if strings.TrimSpace(item.Quote) == "" {
			continue
		}
		sb.WriteString(`<figure class="` + cls("item") + `" data-index="` + strconv.Itoa(i) + `">`)
		sb.WriteString(`<blockquote class="` + cls("quote") + `">` + ctx.SanitizeHTML(item.Quote) + `</blockquote>`)
		sb.WriteString(`<figcaption class="` + cls("author") + `">`)
		mediaBlock(&sb, page, ItemKey(SectionTestimonials, "items", i, "image"), cls("avatar"), item.Name)
		textBlock(&sb, ctx, "span", cls("name"), item.Name)
		textBlock(&sb, ctx, "span", cls("role"), item.Role)
		sb.WriteString(`</figcaption>`)
		sb.WriteString(`</figure>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
