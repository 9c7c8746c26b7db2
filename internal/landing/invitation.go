package landing

import "strings"

// InvitationSection is the closing invitation with date and time.
type InvitationSection struct {
	Visible      bool     `json:"visible"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	BulletPoints []string `json:"bulletPoints"`
	CTAText      string   `json:"ctaText"`
	CTALink      string   `json:"ctaLink"`
	Media        string   `json:"media"`
}

func (s InvitationSection) IsVisible() bool { return s.Visible }

func defaultInvitation() InvitationSection {
	return InvitationSection{
		Visible:  true,
		Title:    "You're invited",
		Subtitle: "Seats are limited so everyone gets time to ask questions.",
		Date:     "",
		Time:     "",
		BulletPoints: []string{
			"Live on Zoom",
			"Recordings included",
		},
		CTAText: "Reserve my spot",
		CTALink: "#",
	}
}

func invitationDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *InvitationSection { return &d.Invitation }
	return NewSectionBuilder(SectionInvitation, get).
		WithName("Invitation").
		WithDescription("Closing invitation with date, time and registration button").
		WithCategory("marketing").
		WithIcon("calendar").
		AddBooleanField("visible", true).
		AddStringField("title", defaultInvitation().Title).
		AddStringField("subtitle", "").
		AddStringField("date", "").
		AddStringField("time", "").
		AddStringField("ctaText", defaultInvitation().CTAText).
		AddStringField("ctaLink", defaultInvitation().CTALink).
		WithList(listOf[string]("bulletPoints", func(d *TemplateData) *[]string { return &d.Invitation.BulletPoints }, nil)).
		WithMedia(func(d *TemplateData, field string) *string {
			if field == "media" {
				return &d.Invitation.Media
			}
			return nil
		}, "media").
		WithCTA(func(d *TemplateData) (string, string) { return ctaLink(d.Invitation.CTAText, d.Invitation.CTALink) }).
		WithRenderer(renderInvitation).
		MustBuild()
}

func renderInvitation(ctx RenderContext, prefix string, page *TemplateData) string {
	invitation := page.Invitation
	cls := func(element string) string { return className(prefix, "invitation-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	sb.WriteString(`<div class="` + cls("content") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), invitation.Title)
	textBlock(&sb, ctx, "p", cls("subtitle"), invitation.Subtitle)

	if strings.TrimSpace(invitation.Date) != "" || strings.TrimSpace(invitation.Time) != "" {
		sb.WriteString(`<p class="` + cls("when") + `">`)
		if strings.TrimSpace(invitation.Date) != "" {
			sb.WriteString(`<span class="` + cls("date") + `">` + esc(invitation.Date) + `</span>`)
		}
		if strings.TrimSpace(invitation.Time) != "" {
			sb.WriteString(`<span class="` + cls("time") + `">` + esc(invitation.Time) + `</span>`)
		}
		sb.WriteString(`</p>`)
	}

	bulletList(&sb, ctx, cls("bullets"), invitation.BulletPoints)
	linkButton(&sb, cls("button"), invitation.CTAText, invitation.CTALink)
	sb.WriteString(`</div>`)
	mediaBlock(&sb, page, FieldKey(SectionInvitation, "media"), cls("media"), invitation.Title)
	sb.WriteString(`</div>`)
	return sb.String()
}
