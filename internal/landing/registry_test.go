package landing

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestDefaultRegistry_CanonicalOrder(t *testing.T) {
	want := []SectionKey{
		SectionHero, SectionMarquee, SectionWhy, SectionAbout, SectionLogos, SectionGallery,
		SectionStats, SectionTestimonials, SectionProgram, SectionBonus, SectionInvitation, SectionFooter,
	}
	if got := CanonicalOrder(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDefaultRegistry_FloatingSourcesHaveCTA(t *testing.T) {
	for _, desc := range DefaultRegistry().Descriptors() {
		if desc.Metadata.CanFloat != IsFloatingSource(desc.Key) {
			t.Fatalf("section %s: CanFloat=%v does not match floating sources", desc.Key, desc.Metadata.CanFloat)
		}
	}
}

func TestDefaultRegistry_MediaFieldsResolve(t *testing.T) {
	d := Defaults()
	for _, desc := range DefaultRegistry().Descriptors() {
		for _, field := range desc.Metadata.MediaFields {
			if _, err := d.mediaSlot(FieldKey(desc.Key, field)); err != nil {
				t.Fatalf("media field %s.%s: %v", desc.Key, field, err)
			}
		}
		for _, list := range desc.lists {
			for _, field := range list.MediaFields {
				if _, err := d.mediaSlot(ItemKey(desc.Key, list.Name, 0, field)); err != nil {
					t.Fatalf("media field %s.%s.%s: %v", desc.Key, list.Name, field, err)
				}
			}
		}
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(heroDescriptor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Register(heroDescriptor()); !errors.Is(err, ErrDuplicateSectionKey) {
		t.Fatalf("expected ErrDuplicateSectionKey, got %v", err)
	}
}

func TestRegistry_MetadataJSON(t *testing.T) {
	data, err := DefaultRegistry().MarshalMetadataJSON()
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	var decoded []SectionMetadata
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if len(decoded) != 12 {
		t.Fatalf("expected 12 sections, got %d", len(decoded))
	}
	if decoded[2].Type != SectionWhy || !slices.Contains(decoded[2].Lists, "points") {
		t.Fatalf("unexpected why metadata %+v", decoded[2])
	}
}

func TestSectionBuilder_RequiresRenderer(t *testing.T) {
	_, err := NewSectionBuilder(SectionHero, func(d *TemplateData) *HeroSection { return &d.Hero }).Build()
	if err == nil {
		t.Fatalf("expected error without renderer")
	}
}
