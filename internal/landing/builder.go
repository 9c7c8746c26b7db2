package landing

import (
	"encoding/json"
	"fmt"
)

// SectionMetadata describes a section type for the builder UI.
type SectionMetadata struct {
	Type        SectionKey             `json:"type"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Icon        string                 `json:"icon,omitempty"`
	Schema      map[string]interface{} `json:"schema,omitempty"`
	Lists       []string               `json:"lists,omitempty"`
	MediaFields []string               `json:"media_fields,omitempty"`
	CanFloat    bool                   `json:"can_float"`
}

type visibility interface {
	IsVisible() bool
}

// SectionBuilder provides a fluent interface for creating section descriptors.
type SectionBuilder struct {
	descriptor *SectionDescriptor
	errors     []error
}

// NewSectionBuilder starts a descriptor for the section stored at get(d).
// Merging and visibility are derived from the section type.
func NewSectionBuilder[T visibility](key SectionKey, get func(*TemplateData) *T) *SectionBuilder {
	b := &SectionBuilder{
		descriptor: &SectionDescriptor{
			Key: key,
			Metadata: SectionMetadata{
				Type:   key,
				Schema: make(map[string]interface{}),
			},
		},
	}
	if get == nil {
		b.errors = append(b.errors, fmt.Errorf("accessor cannot be nil"))
		return b
	}
	b.descriptor.merge = func(d *TemplateData, raw json.RawMessage) error {
		target := get(d)
		merged, err := shallowMerge(*target, raw)
		*target = merged
		return err
	}
	b.descriptor.visible = func(d *TemplateData) bool {
		return (*get(d)).IsVisible()
	}
	return b
}

// WithName sets the display name of the section.
func (b *SectionBuilder) WithName(name string) *SectionBuilder {
	b.descriptor.Metadata.Name = name
	return b
}

// WithDescription sets the description of the section.
func (b *SectionBuilder) WithDescription(desc string) *SectionBuilder {
	b.descriptor.Metadata.Description = desc
	return b
}

// WithCategory sets the category for grouping sections.
func (b *SectionBuilder) WithCategory(category string) *SectionBuilder {
	b.descriptor.Metadata.Category = category
	return b
}

// WithIcon sets the icon identifier for the section.
func (b *SectionBuilder) WithIcon(icon string) *SectionBuilder {
	b.descriptor.Metadata.Icon = icon
	return b
}

// WithRenderer sets the rendering function for the section.
func (b *SectionBuilder) WithRenderer(renderer Renderer) *SectionBuilder {
	if renderer == nil {
		b.errors = append(b.errors, fmt.Errorf("renderer cannot be nil"))
	}
	b.descriptor.Renderer = renderer
	return b
}

// WithMedia declares section-level media fields and how to reach them.
func (b *SectionBuilder) WithMedia(accessor func(d *TemplateData, field string) *string, fields ...string) *SectionBuilder {
	b.descriptor.media = accessor
	for _, field := range fields {
		b.descriptor.Metadata.MediaFields = append(b.descriptor.Metadata.MediaFields, field)
		b.AddSchemaField(field, map[string]interface{}{"type": "media"})
	}
	return b
}

// WithList declares a repeated sub-entity field.
func (b *SectionBuilder) WithList(list ListSpec) *SectionBuilder {
	b.descriptor.lists = append(b.descriptor.lists, list)
	b.descriptor.Metadata.Lists = append(b.descriptor.Metadata.Lists, list.Name)
	items := map[string]interface{}{"type": list.itemType}
	if len(list.MediaFields) > 0 {
		items["media_fields"] = list.MediaFields
	}
	return b.AddSchemaField(list.Name, map[string]interface{}{
		"type":  "array",
		"items": items,
	})
}

// WithCTA marks the section as a floating button source.
func (b *SectionBuilder) WithCTA(cta func(d *TemplateData) (text, link string)) *SectionBuilder {
	b.descriptor.cta = cta
	b.descriptor.Metadata.CanFloat = cta != nil
	return b
}

// AddSchemaField adds a field definition to the section's schema.
func (b *SectionBuilder) AddSchemaField(name string, fieldSchema map[string]interface{}) *SectionBuilder {
	if b.descriptor.Metadata.Schema == nil {
		b.descriptor.Metadata.Schema = make(map[string]interface{})
	}
	b.descriptor.Metadata.Schema[name] = fieldSchema
	return b
}

// AddStringField is a convenience method for adding a string field.
func (b *SectionBuilder) AddStringField(name string, defaultValue string) *SectionBuilder {
	return b.AddSchemaField(name, map[string]interface{}{
		"type":    "string",
		"default": defaultValue,
	})
}

// AddBooleanField is a convenience method for adding a boolean field.
func (b *SectionBuilder) AddBooleanField(name string, defaultValue bool) *SectionBuilder {
	return b.AddSchemaField(name, map[string]interface{}{
		"type":    "boolean",
		"default": defaultValue,
	})
}

// Build constructs the final SectionDescriptor and returns any accumulated errors.
func (b *SectionBuilder) Build() (*SectionDescriptor, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("builder has %d error(s): %v", len(b.errors), b.errors[0])
	}
	if b.descriptor.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if b.descriptor.Key == "" {
		return nil, fmt.Errorf("section key is required")
	}
	return b.descriptor, nil
}

// MustBuild builds the descriptor and panics if there are errors.
func (b *SectionBuilder) MustBuild() *SectionDescriptor {
	desc, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build section descriptor %s: %v", b.descriptor.Key, err))
	}
	return desc
}
