package landing

import (
	"encoding/json"
	"reflect"
	"slices"
	"testing"

	"landing-builder-backend/pkg/media"
)

func TestNormalize_NilInputYieldsDefaults(t *testing.T) {
	got := Normalize(nil)
	if !reflect.DeepEqual(got, Defaults()) {
		t.Fatalf("expected defaults for nil input")
	}
	if got.Hero.Headline != "You're Not Matching the" {
		t.Fatalf("unexpected default headline %q", got.Hero.Headline)
	}
	if got.Hero.HighlightedWord != "Frequency" {
		t.Fatalf("unexpected highlighted word %q", got.Hero.HighlightedWord)
	}
	if !got.Hero.Visible {
		t.Fatalf("expected hero to be visible by default")
	}
}

func TestNormalize_UpgradesLegacyData(t *testing.T) {
	got := NormalizeJSON([]byte(`{"hero":{"headline":"Old"}}`))

	if !reflect.DeepEqual(got.Testimonials, defaultTestimonials()) {
		t.Fatalf("expected default testimonials, got %+v", got.Testimonials)
	}

	expectedHero := defaultHero()
	expectedHero.Headline = "Old"
	if !reflect.DeepEqual(got.Hero, expectedHero) {
		t.Fatalf("expected hero %+v, got %+v", expectedHero, got.Hero)
	}
	if !reflect.DeepEqual(got.About, defaultAbout()) {
		t.Fatalf("partial hero must not affect about, got %+v", got.About)
	}
	if !slices.Equal(got.SectionOrder, CanonicalOrder()) {
		t.Fatalf("expected canonical order, got %v", got.SectionOrder)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`{}`,
		`null`,
		`"not an object"`,
		`{"hero":{"headline":"Old"}}`,
		`{"hero":{"headline":5,"badge":"New badge"}}`,
		`{"sectionOrder":["about","hero","about","custom",""]}`,
		`{"floatingButton":{"enabled":true,"section":"why"}}`,
		`{"colors":{"primary":"#000000"},"marquee":{"items":null}}`,
		`{"hero":{"media":"https://youtu.be/abc123"},"mediaSettings":{"hero.media":{"autoplay":true},"bad..key":{},"why.points.x.image":{}}}`,
		`{"why":{"points":[{"title":"Only","image":"a.png"}]},"mediaSettings":{"why.points.0.image":{"mute":false}}}`,
	}

	for _, input := range inputs {
		first := NormalizeJSON([]byte(input))
		encoded, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("marshal %s: %v", input, err)
		}
		second := NormalizeJSON(encoded)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("normalize is not idempotent for %s:\nfirst:  %+v\nsecond: %+v", input, first, second)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	p := PartialTemplate{
		"hero":         json.RawMessage(`{"headline":"Old"}`),
		"sectionOrder": json.RawMessage(`["footer"]`),
	}

	_ = Normalize(p)

	if len(p) != 2 {
		t.Fatalf("expected input to keep 2 keys, got %d", len(p))
	}
	if string(p["hero"]) != `{"headline":"Old"}` {
		t.Fatalf("input hero was modified: %s", p["hero"])
	}
	if string(p["sectionOrder"]) != `["footer"]` {
		t.Fatalf("input order was modified: %s", p["sectionOrder"])
	}
}

func TestNormalize_SectionOrderCompleteness(t *testing.T) {
	got := NormalizeJSON([]byte(`{"sectionOrder":["about","hero","custom","about"]}`))

	seen := make(map[SectionKey]int)
	for _, key := range got.SectionOrder {
		seen[key]++
		if seen[key] > 1 {
			t.Fatalf("duplicate key %s in %v", key, got.SectionOrder)
		}
	}
	for _, key := range CanonicalOrder() {
		if seen[key] != 1 {
			t.Fatalf("canonical key %s missing from %v", key, got.SectionOrder)
		}
	}

	prefix := []SectionKey{SectionAbout, SectionHero, "custom"}
	if !slices.Equal(got.SectionOrder[:3], prefix) {
		t.Fatalf("expected order to start with %v, got %v", prefix, got.SectionOrder)
	}
	if got.SectionOrder[3] != SectionMarquee {
		t.Fatalf("expected missing keys appended in canonical order, got %v", got.SectionOrder)
	}
	if len(got.SectionOrder) != len(CanonicalOrder())+1 {
		t.Fatalf("expected %d keys, got %d", len(CanonicalOrder())+1, len(got.SectionOrder))
	}
}

func TestNormalize_BadFieldFallsBackToDefault(t *testing.T) {
	got := NormalizeJSON([]byte(`{"hero":{"headline":5,"badge":"New badge"}}`))

	if got.Hero.Headline != defaultHero().Headline {
		t.Fatalf("expected default headline, got %q", got.Hero.Headline)
	}
	if got.Hero.Badge != "New badge" {
		t.Fatalf("expected badge to be applied, got %q", got.Hero.Badge)
	}
}

func TestNormalize_NullKeepsDefault(t *testing.T) {
	got := NormalizeJSON([]byte(`{"hero":{"headline":null},"marquee":null}`))

	if got.Hero.Headline != defaultHero().Headline {
		t.Fatalf("expected null headline to keep default, got %q", got.Hero.Headline)
	}
	if !reflect.DeepEqual(got.Marquee, defaultMarquee()) {
		t.Fatalf("expected null marquee to keep default, got %+v", got.Marquee)
	}
}

func TestNormalize_FloatingButtonRestrictedToSources(t *testing.T) {
	got := NormalizeJSON([]byte(`{"floatingButton":{"enabled":true,"section":"why"}}`))

	if !got.FloatingButton.Enabled {
		t.Fatalf("expected enabled flag to be kept")
	}
	if got.FloatingButton.Section != SectionHero {
		t.Fatalf("expected invalid source to reset to hero, got %s", got.FloatingButton.Section)
	}
}

func TestNormalize_MediaSettingsPassThrough(t *testing.T) {
	got := NormalizeJSON([]byte(`{"mediaSettings":{"hero.media":{"autoplay":true},"bad..key":{"mute":false},"why.points.x.image":{}}}`))

	if len(got.MediaSettings) != 1 {
		t.Fatalf("expected 1 media setting, got %d: %v", len(got.MediaSettings), got.MediaSettings)
	}
	opts, ok := got.MediaSettings[FieldKey(SectionHero, "media")]
	if !ok {
		t.Fatalf("expected hero.media settings to be kept")
	}
	if opts != (media.Options{Autoplay: true, Mute: true}) {
		t.Fatalf("expected missing mute to default to true, got %+v", opts)
	}
}
