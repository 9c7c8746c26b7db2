package landing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UpdateSection shallow-merges patch into one section. Keys absent from the
// patch and all other sections are left untouched. The patch must be a JSON
// object; a patch with a value of the wrong type is rejected as a whole.
func UpdateSection(d TemplateData, key SectionKey, patch json.RawMessage) (TemplateData, error) {
	desc, err := lookupSection(key)
	if err != nil {
		return d, err
	}
	if isNull(patch) {
		return d, nil
	}
	if bytes.TrimSpace(patch)[0] != '{' {
		return d, fmt.Errorf("%w: section patch must be an object", ErrInvalidPatch)
	}

	out := d.Clone()
	if err := desc.merge(&out, patch); err != nil {
		return d, err
	}
	return PruneOrphanedMediaSettings(out), nil
}

// SetFloatingButton selects the section whose call to action feeds the
// floating button. Only one section can be the source at a time.
func SetFloatingButton(d TemplateData, enabled bool, section SectionKey) (TemplateData, error) {
	if !IsFloatingSource(section) {
		return d, fmt.Errorf("%w: %s", ErrInvalidFloatingSection, section)
	}
	out := d.Clone()
	out.FloatingButton = FloatingButton{Enabled: enabled, Section: section}
	return out, nil
}

// FloatingCTA returns the text and link of the floating button, and false when
// the button is disabled or its source has no call to action text.
func (d TemplateData) FloatingCTA() (text, link string, ok bool) {
	if !d.FloatingButton.Enabled {
		return "", "", false
	}
	desc, found := DefaultRegistry().Get(d.FloatingButton.Section)
	if !found || desc.cta == nil {
		return "", "", false
	}
	text, link = desc.cta(&d)
	if text == "" {
		return "", "", false
	}
	if link == "" {
		link = "#" + string(d.FloatingButton.Section)
	}
	return text, link, true
}
