package document

import (
	"encoding/json"

	"landing-builder-backend/pkg/validator"
)

// isColor accepts hex colors and the transparent keyword.
func isColor(value string) bool {
	return value == "transparent" || validator.IsHexColor(value)
}

// Settings are the page-level layout settings of a free-form page.
type Settings struct {
	MaxWidth        int    `json:"maxWidth"`
	Padding         int    `json:"padding"`
	BackgroundColor string `json:"backgroundColor"`
}

// DefaultSettings returns the layout used by new pages.
func DefaultSettings() Settings {
	return Settings{MaxWidth: 1200, Padding: 24, BackgroundColor: "#ffffff"}
}

// NormalizeSettings overlays the keys present in raw on the defaults and
// clamps out-of-range values. Malformed input yields the defaults.
func NormalizeSettings(raw json.RawMessage) Settings {
	out := DefaultSettings()
	if len(raw) == 0 {
		return out
	}

	var partial struct {
		MaxWidth        *int    `json:"maxWidth"`
		Padding         *int    `json:"padding"`
		BackgroundColor *string `json:"backgroundColor"`
	}
	if err := json.Unmarshal(raw, &partial); err != nil {
		return out
	}
	if partial.MaxWidth != nil {
		out.MaxWidth = *partial.MaxWidth
	}
	if partial.Padding != nil {
		out.Padding = *partial.Padding
	}
	if partial.BackgroundColor != nil {
		out.BackgroundColor = *partial.BackgroundColor
	}
	return out.Clamp()
}

// Clamp returns s with values outside the supported ranges repaired.
func (s Settings) Clamp() Settings {
	defaults := DefaultSettings()
	switch {
	case s.MaxWidth <= 0:
		s.MaxWidth = defaults.MaxWidth
	case s.MaxWidth < 320:
		s.MaxWidth = 320
	case s.MaxWidth > 2400:
		s.MaxWidth = 2400
	}
	if s.Padding < 0 {
		s.Padding = 0
	}
	if s.Padding > 200 {
		s.Padding = 200
	}
	if s.BackgroundColor != "" && !isColor(s.BackgroundColor) {
		s.BackgroundColor = defaults.BackgroundColor
	}
	return s
}
