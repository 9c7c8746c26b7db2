// Package landing implements the fixed-slot marketing template: the section
// model and its defaults, the normalizer that upgrades persisted data, the
// field and list editing operations, section ordering and the renderer.
package landing

import (
	"maps"
	"slices"
)

// SectionKey names one of the template sections.
type SectionKey string

const (
	SectionHero         SectionKey = "hero"
	SectionMarquee      SectionKey = "marquee"
	SectionWhy          SectionKey = "why"
	SectionAbout        SectionKey = "about"
	SectionLogos        SectionKey = "logos"
	SectionGallery      SectionKey = "gallery"
	SectionStats        SectionKey = "stats"
	SectionTestimonials SectionKey = "testimonials"
	SectionProgram      SectionKey = "program"
	SectionBonus        SectionKey = "bonus"
	SectionInvitation   SectionKey = "invitation"
	SectionFooter       SectionKey = "footer"
)

// CanonicalOrder returns the default section order. New sections are appended
// to persisted orders in this order.
func CanonicalOrder() []SectionKey {
	return DefaultRegistry().Keys()
}

// FloatingSources lists the sections that can feed the floating CTA button.
var FloatingSources = []SectionKey{SectionHero, SectionProgram, SectionInvitation, SectionFooter}

// IsFloatingSource reports whether key may be selected as the floating button source.
func IsFloatingSource(key SectionKey) bool {
	return slices.Contains(FloatingSources, key)
}

// FloatingButton configures the sticky call-to-action button.
type FloatingButton struct {
	Enabled bool       `json:"enabled"`
	Section SectionKey `json:"section"`
}

// TemplateData is the aggregate persisted for a template-mode page.
type TemplateData struct {
	Colors         TemplateColors      `json:"colors"`
	Hero           HeroSection         `json:"hero"`
	Marquee        MarqueeSection      `json:"marquee"`
	Why            WhySection          `json:"why"`
	About          AboutSection        `json:"about"`
	Logos          LogosSection        `json:"logos"`
	Gallery        GallerySection      `json:"gallery"`
	Stats          StatsSection        `json:"stats"`
	Testimonials   TestimonialsSection `json:"testimonials"`
	Program        ProgramSection      `json:"program"`
	Bonus          BonusSection        `json:"bonus"`
	Invitation     InvitationSection   `json:"invitation"`
	Footer         FooterSection       `json:"footer"`
	FloatingButton FloatingButton      `json:"floatingButton"`
	SectionOrder   []SectionKey        `json:"sectionOrder"`
	MediaSettings  MediaSettings       `json:"mediaSettings"`
}

// Defaults returns a fully populated template for a new page.
func Defaults() TemplateData {
	return TemplateData{
		Colors:         defaultColors(),
		Hero:           defaultHero(),
		Marquee:        defaultMarquee(),
		Why:            defaultWhy(),
		About:          defaultAbout(),
		Logos:          defaultLogos(),
		Gallery:        defaultGallery(),
		Stats:          defaultStats(),
		Testimonials:   defaultTestimonials(),
		Program:        defaultProgram(),
		Bonus:          defaultBonus(),
		Invitation:     defaultInvitation(),
		Footer:         defaultFooter(),
		FloatingButton: FloatingButton{Enabled: false, Section: SectionHero},
		SectionOrder:   CanonicalOrder(),
		MediaSettings:  MediaSettings{},
	}
}

// Clone returns a deep copy; edits on the copy never reach the receiver.
func (d TemplateData) Clone() TemplateData {
	out := d
	out.Hero.BulletPoints = slices.Clone(d.Hero.BulletPoints)
	out.Marquee.Items = slices.Clone(d.Marquee.Items)
	out.Why.Points = slices.Clone(d.Why.Points)
	out.About.Credentials = slices.Clone(d.About.Credentials)
	out.Logos.Logos = slices.Clone(d.Logos.Logos)
	out.Gallery.Images = slices.Clone(d.Gallery.Images)
	out.Stats.Stats = slices.Clone(d.Stats.Stats)
	out.Testimonials.Items = slices.Clone(d.Testimonials.Items)
	out.Program.Points = slices.Clone(d.Program.Points)
	out.Bonus.Items = slices.Clone(d.Bonus.Items)
	out.Invitation.BulletPoints = slices.Clone(d.Invitation.BulletPoints)
	out.Footer.Links = slices.Clone(d.Footer.Links)
	out.SectionOrder = slices.Clone(d.SectionOrder)
	out.MediaSettings = maps.Clone(d.MediaSettings)
	if out.MediaSettings == nil {
		out.MediaSettings = MediaSettings{}
	}
	return out
}
