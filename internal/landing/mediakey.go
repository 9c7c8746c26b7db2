package landing

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"landing-builder-backend/pkg/media"
)

const mediaKeySeparator = "."

// MediaKey identifies one media field of a template: either a section-level
// field (hero.media) or a field of a list item (why.points.0.image).
type MediaKey struct {
	Section SectionKey
	List    string
	Index   int
	Field   string
}

// FieldKey returns the key of a section-level media field.
func FieldKey(section SectionKey, field string) MediaKey {
	return MediaKey{Section: section, Field: field}
}

// ItemKey returns the key of a media field on a list item.
func ItemKey(section SectionKey, list string, index int, field string) MediaKey {
	return MediaKey{Section: section, List: list, Index: index, Field: field}
}

// IsItem reports whether the key points into a list item.
func (k MediaKey) IsItem() bool {
	return k.List != ""
}

func (k MediaKey) String() string {
	if k.IsItem() {
		return strings.Join([]string{string(k.Section), k.List, strconv.Itoa(k.Index), k.Field}, mediaKeySeparator)
	}
	return string(k.Section) + mediaKeySeparator + k.Field
}

// ParseMediaKey parses the persisted string form of a key.
func ParseMediaKey(value string) (MediaKey, error) {
	parts := strings.Split(strings.TrimSpace(value), mediaKeySeparator)
	for _, part := range parts {
		if part == "" {
			return MediaKey{}, fmt.Errorf("%w: %q", ErrInvalidMediaKey, value)
		}
	}

	switch len(parts) {
	case 2:
		return FieldKey(SectionKey(parts[0]), parts[1]), nil
	case 4:
		index, err := strconv.Atoi(parts[2])
		if err != nil || index < 0 {
			return MediaKey{}, fmt.Errorf("%w: %q", ErrInvalidMediaKey, value)
		}
		return ItemKey(SectionKey(parts[0]), parts[1], index, parts[3]), nil
	default:
		return MediaKey{}, fmt.Errorf("%w: %q", ErrInvalidMediaKey, value)
	}
}

// MarshalText implements encoding.TextMarshaler so keys serialise as strings.
func (k MediaKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MediaKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMediaKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MediaSettings maps media fields to their playback options.
type MediaSettings map[MediaKey]media.Options

// UnmarshalJSON skips entries whose key or value cannot be parsed. Missing
// option fields take their default values.
func (m *MediaSettings) UnmarshalJSON(data []byte) error {
	out := MediaSettings{}
	if isNull(data) {
		*m = out
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = out
		return nil
	}
	for rawKey, rawValue := range raw {
		key, err := ParseMediaKey(rawKey)
		if err != nil {
			continue
		}
		opts := media.DefaultOptions()
		if !isNull(rawValue) {
			if err := json.Unmarshal(rawValue, &opts); err != nil {
				continue
			}
		}
		out[key] = opts
	}
	*m = out
	return nil
}

// Keys returns the keys in their string order.
func (m MediaSettings) Keys() []MediaKey {
	keys := make([]MediaKey, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b MediaKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

// mediaSlot returns a pointer to the URL field named by key. It returns nil
// without an error when the key names a list item that does not exist.
func (d *TemplateData) mediaSlot(key MediaKey) (*string, error) {
	desc, err := lookupSection(key.Section)
	if err != nil {
		return nil, err
	}

	if !key.IsItem() {
		if desc.media == nil || !slices.Contains(desc.Metadata.MediaFields, key.Field) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMediaField, key)
		}
		return desc.media(d, key.Field), nil
	}

	spec, ok := desc.List(key.List)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownList, key.Section, key.List)
	}
	if spec.media == nil || !spec.hasMediaField(key.Field) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMediaField, key)
	}
	return spec.media(d, key.Index, key.Field), nil
}

// MediaURL returns the URL stored in the field named by key, or "".
func (d TemplateData) MediaURL(key MediaKey) string {
	slot, err := d.mediaSlot(key)
	if err != nil || slot == nil {
		return ""
	}
	return *slot
}

// MediaOptions returns the playback options for key, falling back to the defaults.
func (d TemplateData) MediaOptions(key MediaKey) media.Options {
	if opts, ok := d.MediaSettings[key]; ok {
		return opts
	}
	return media.DefaultOptions()
}

// ResolveMedia resolves the field named by key into a renderable element.
func (d TemplateData) ResolveMedia(key MediaKey) (media.Renderable, bool) {
	return media.Resolve(d.MediaURL(key), d.MediaOptions(key))
}

// SetMedia stores url in the field named by key. Clearing the URL also drops
// the field's playback options. A list index out of range panics.
func SetMedia(d TemplateData, key MediaKey, url string) (TemplateData, error) {
	out := d.Clone()
	slot, err := out.mediaSlot(key)
	if err != nil {
		return d, err
	}
	if slot == nil {
		count, _ := ItemCount(d, key.Section, key.List)
		checkIndex(key.Section, key.List, key.Index, count)
	}

	*slot = strings.TrimSpace(url)
	if *slot == "" {
		delete(out.MediaSettings, key)
	}
	return out, nil
}

// SetMediaOptions stores playback options for a field that currently holds media.
func SetMediaOptions(d TemplateData, key MediaKey, opts media.Options) (TemplateData, error) {
	slot, err := d.mediaSlot(key)
	if err != nil {
		return d, err
	}
	if slot == nil || strings.TrimSpace(*slot) == "" {
		return d, fmt.Errorf("%w: %s", ErrNoMedia, key)
	}

	out := d.Clone()
	out.MediaSettings[key] = opts
	return out, nil
}

// PruneOrphanedMediaSettings drops settings whose field is unknown or empty.
func PruneOrphanedMediaSettings(d TemplateData) TemplateData {
	out := d.Clone()
	for key := range out.MediaSettings {
		slot, err := out.mediaSlot(key)
		if err != nil || slot == nil || strings.TrimSpace(*slot) == "" {
			delete(out.MediaSettings, key)
		}
	}
	return out
}
