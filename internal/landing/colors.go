package landing

import "fmt"

// ColorSlot names one of the six template colors.
type ColorSlot string

const (
	ColorPrimary   ColorSlot = "primary"
	ColorSecondary ColorSlot = "secondary"
	ColorAccent    ColorSlot = "accent"
	ColorHeroBg    ColorSlot = "heroBg"
	ColorDarkBg    ColorSlot = "darkBg"
	ColorBodyBg    ColorSlot = "bodyBg"
)

// ColorSlots lists every slot in a stable order.
var ColorSlots = []ColorSlot{ColorPrimary, ColorSecondary, ColorAccent, ColorHeroBg, ColorDarkBg, ColorBodyBg}

// TemplateColors holds hex color strings.
type TemplateColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	HeroBg    string `json:"heroBg"`
	DarkBg    string `json:"darkBg"`
	BodyBg    string `json:"bodyBg"`
}

func defaultColors() TemplateColors {
	return TemplateColors{
		Primary:   "#7c3aed",
		Secondary: "#0ea5e9",
		Accent:    "#f59e0b",
		HeroBg:    "#0f0a1f",
		DarkBg:    "#111827",
		BodyBg:    "#ffffff",
	}
}

func (c *TemplateColors) slot(slot ColorSlot) *string {
	switch slot {
	case ColorPrimary:
		return &c.Primary
	case ColorSecondary:
		return &c.Secondary
	case ColorAccent:
		return &c.Accent
	case ColorHeroBg:
		return &c.HeroBg
	case ColorDarkBg:
		return &c.DarkBg
	case ColorBodyBg:
		return &c.BodyBg
	default:
		return nil
	}
}

// Get returns the value of a slot and whether the slot exists.
func (c TemplateColors) Get(slot ColorSlot) (string, bool) {
	ptr := c.slot(slot)
	if ptr == nil {
		return "", false
	}
	return *ptr, true
}

// UpdateColor replaces one color slot.
func UpdateColor(d TemplateData, slot ColorSlot, value string) (TemplateData, error) {
	out := d.Clone()
	ptr := out.Colors.slot(slot)
	if ptr == nil {
		return d, fmt.Errorf("%w: %s", ErrUnknownColor, slot)
	}
	*ptr = value
	return out, nil
}
