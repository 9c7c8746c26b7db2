package landing

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// RenderContext exposes the minimal capabilities required by section renderers.
type RenderContext interface {
	// SanitizeHTML should clean potentially unsafe markup before rendering.
	SanitizeHTML(input string) string
}

// Renderer renders one section of a page into HTML.
type Renderer func(ctx RenderContext, prefix string, page *TemplateData) string

// SectionDescriptor binds a section key to everything the template needs to
// know about it: defaults and merging (through the typed accessor), list
// fields, media fields, the renderer and builder metadata.
type SectionDescriptor struct {
	Key      SectionKey
	Metadata SectionMetadata
	Renderer Renderer

	lists   []ListSpec
	merge   func(d *TemplateData, raw json.RawMessage) error
	visible func(d *TemplateData) bool
	media   func(d *TemplateData, field string) *string
	cta     func(d *TemplateData) (text, link string)
}

// List returns the list field named name.
func (s *SectionDescriptor) List(name string) (ListSpec, bool) {
	for _, list := range s.lists {
		if list.Name == name {
			return list, true
		}
	}
	return ListSpec{}, false
}

// Visible reports whether the section is switched on in d.
func (s *SectionDescriptor) Visible(d *TemplateData) bool {
	if s.visible == nil {
		return true
	}
	return s.visible(d)
}

// Registry stores section descriptors in canonical order.
type Registry struct {
	mu          sync.RWMutex
	order       []SectionKey
	descriptors map[SectionKey]*SectionDescriptor
}

// NewRegistry creates an empty section registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[SectionKey]*SectionDescriptor)}
}

// Register appends a section to the canonical order.
func (r *Registry) Register(desc *SectionDescriptor) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if desc == nil {
		return fmt.Errorf("descriptor is nil")
	}
	key := SectionKey(strings.TrimSpace(string(desc.Key)))
	if key == "" {
		return fmt.Errorf("section key is empty")
	}
	if desc.Renderer == nil {
		return fmt.Errorf("renderer is nil for section %s", key)
	}
	if desc.merge == nil {
		return fmt.Errorf("section %s has no accessor", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSectionKey, key)
	}
	r.descriptors[key] = desc
	r.order = append(r.order, key)
	return nil
}

// MustRegister registers the section and panics if registration fails.
func (r *Registry) MustRegister(desc *SectionDescriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Get retrieves the descriptor for key.
func (r *Registry) Get(key SectionKey) (*SectionDescriptor, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[key]
	return desc, ok
}

// Keys returns the registered keys in canonical order.
func (r *Registry) Keys() []SectionKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SectionKey, len(r.order))
	copy(out, r.order)
	return out
}

// Descriptors returns all descriptors in canonical order.
func (r *Registry) Descriptors() []*SectionDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*SectionDescriptor, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.descriptors[key])
	}
	return out
}

// ListMetadata returns builder metadata for all sections in canonical order.
func (r *Registry) ListMetadata() []SectionMetadata {
	descriptors := r.Descriptors()
	out := make([]SectionMetadata, 0, len(descriptors))
	for _, desc := range descriptors {
		out = append(out, desc.Metadata)
	}
	return out
}

// MarshalMetadataJSON returns JSON representation of all section metadata.
func (r *Registry) MarshalMetadataJSON() ([]byte, error) {
	return json.Marshal(r.ListMetadata())
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry holding the built-in sections. The
// registration order below is the canonical section order.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		reg := NewRegistry()
		reg.MustRegister(heroDescriptor())
		reg.MustRegister(marqueeDescriptor())
		reg.MustRegister(whyDescriptor())
		reg.MustRegister(aboutDescriptor())
		reg.MustRegister(logosDescriptor())
		reg.MustRegister(galleryDescriptor())
		reg.MustRegister(statsDescriptor())
		reg.MustRegister(testimonialsDescriptor())
		reg.MustRegister(programDescriptor())
		reg.MustRegister(bonusDescriptor())
		reg.MustRegister(invitationDescriptor())
		reg.MustRegister(footerDescriptor())
		defaultRegistry = reg
	})
	return defaultRegistry
}

func lookupSection(key SectionKey) (*SectionDescriptor, error) {
	desc, ok := DefaultRegistry().Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	return desc, nil
}
