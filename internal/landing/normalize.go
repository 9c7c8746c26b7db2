package landing

import (
	"encoding/json"
	"slices"
	"strings"
)

// PartialTemplate is template data as persisted: any subset of the top-level
// keys, possibly written before some sections existed.
type PartialTemplate map[string]json.RawMessage

// Normalize fills every section, colors and the floating button from the
// defaults, overlaying the keys present in p section by section. Malformed
// values are dropped in favour of the defaults; Normalize never fails and
// never modifies p.
func Normalize(p PartialTemplate) TemplateData {
	out := Defaults()
	if len(p) == 0 {
		return out
	}

	for _, desc := range DefaultRegistry().Descriptors() {
		raw, ok := p[string(desc.Key)]
		if !ok {
			continue
		}
		// A bad field keeps its default; the fields that fit are kept.
		_ = desc.merge(&out, raw)
	}

	if raw, ok := p["colors"]; ok {
		out.Colors, _ = shallowMerge(out.Colors, raw)
	}

	if raw, ok := p["floatingButton"]; ok {
		out.FloatingButton, _ = shallowMerge(out.FloatingButton, raw)
	}
	if !IsFloatingSource(out.FloatingButton.Section) {
		out.FloatingButton.Section = SectionHero
	}

	if raw, ok := p["sectionOrder"]; ok && !isNull(raw) {
		var order []SectionKey
		if err := json.Unmarshal(raw, &order); err == nil {
			out.SectionOrder = reconcileOrder(order)
		}
	}

	if raw, ok := p["mediaSettings"]; ok {
		var settings MediaSettings
		if err := json.Unmarshal(raw, &settings); err == nil && settings != nil {
			out.MediaSettings = settings
		}
	}

	return out
}

// NormalizeJSON normalizes persisted template JSON. Input that is not a JSON
// object yields the defaults.
func NormalizeJSON(data []byte) TemplateData {
	var p PartialTemplate
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return Normalize(p)
}

// reconcileOrder keeps the given order, drops blanks and duplicates and
// appends canonical keys that are missing, in canonical order. Unknown keys
// are kept so that data written by a newer version survives a round trip.
func reconcileOrder(order []SectionKey) []SectionKey {
	canonical := CanonicalOrder()
	out := make([]SectionKey, 0, len(order)+len(canonical))
	seen := make(map[SectionKey]struct{}, len(order))

	for _, key := range order {
		key = SectionKey(strings.TrimSpace(string(key)))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	for _, key := range canonical {
		if !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}
