package landing

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ListSpec describes a repeated sub-entity field of a section.
type ListSpec struct {
	Name        string
	MediaFields []string

	itemType string
	length   func(d *TemplateData) int
	add      func(d *TemplateData)
	patch    func(d *TemplateData, index int, raw json.RawMessage) error
	remove   func(d *TemplateData, index int)
	media    func(d *TemplateData, index int, field string) *string
}

func (l ListSpec) hasMediaField(field string) bool {
	return slices.Contains(l.MediaFields, field)
}

// listOf builds a ListSpec over the slice returned by get. New items are the
// zero value of T, so every string field starts empty. media may be nil when
// the items carry no media.
func listOf[T any](name string, get func(*TemplateData) *[]T, media func(*T, string) *string, mediaFields ...string) ListSpec {
	var zero T
	itemType := "object"
	if _, ok := any(zero).(string); ok {
		itemType = "string"
	}

	spec := ListSpec{
		Name:        name,
		MediaFields: mediaFields,
		itemType:    itemType,
		length: func(d *TemplateData) int {
			return len(*get(d))
		},
		add: func(d *TemplateData) {
			items := get(d)
			var item T
			*items = append(*items, item)
		},
		patch: func(d *TemplateData, index int, raw json.RawMessage) error {
			items := *get(d)
			merged, err := shallowMerge(items[index], raw)
			items[index] = merged
			return err
		},
		remove: func(d *TemplateData, index int) {
			items := get(d)
			*items = slices.Delete(*items, index, index+1)
		},
	}
	if media != nil {
		spec.media = func(d *TemplateData, index int, field string) *string {
			items := *get(d)
			if index < 0 || index >= len(items) {
				return nil
			}
			return media(&items[index], field)
		}
	}
	return spec
}

func resolveList(section SectionKey, list string) (ListSpec, error) {
	desc, err := lookupSection(section)
	if err != nil {
		return ListSpec{}, err
	}
	spec, ok := desc.List(list)
	if !ok {
		return ListSpec{}, fmt.Errorf("%w: %s.%s", ErrUnknownList, section, list)
	}
	return spec, nil
}

func checkIndex(section SectionKey, list string, index, length int) {
	if index < 0 || index >= length {
		panic(fmt.Sprintf("landing: index %d out of range for %s.%s with length %d", index, section, list, length))
	}
}

// ItemCount returns the length of a list field.
func ItemCount(d TemplateData, section SectionKey, list string) (int, error) {
	spec, err := resolveList(section, list)
	if err != nil {
		return 0, err
	}
	return spec.length(&d), nil
}

// AppendItem adds an empty item to the end of a list field.
func AppendItem(d TemplateData, section SectionKey, list string) (TemplateData, error) {
	spec, err := resolveList(section, list)
	if err != nil {
		return d, err
	}
	out := d.Clone()
	spec.add(&out)
	return out, nil
}

// UpdateItem shallow-merges patch into the item at index. An out-of-range
// index is a programming error and panics.
func UpdateItem(d TemplateData, section SectionKey, list string, index int, patch json.RawMessage) (TemplateData, error) {
	spec, err := resolveList(section, list)
	if err != nil {
		return d, err
	}
	checkIndex(section, list, index, spec.length(&d))

	out := d.Clone()
	if err := spec.patch(&out, index, patch); err != nil {
		return d, err
	}
	return PruneOrphanedMediaSettings(out), nil
}

// RemoveItem splices the item at index out of the list. Media settings of the
// removed item are dropped and settings of later items move down one index so
// they stay attached to the same item. An out-of-range index panics.
func RemoveItem(d TemplateData, section SectionKey, list string, index int) (TemplateData, error) {
	spec, err := resolveList(section, list)
	if err != nil {
		return d, err
	}
	checkIndex(section, list, index, spec.length(&d))

	out := d.Clone()
	spec.remove(&out, index)

	shifted := make(MediaSettings, len(out.MediaSettings))
	for key, opts := range out.MediaSettings {
		if key.Section != section || key.List != list {
			shifted[key] = opts
			continue
		}
		switch {
		case key.Index == index:
			continue
		case key.Index > index:
			key.Index--
		}
		shifted[key] = opts
	}
	out.MediaSettings = shifted
	return out, nil
}
