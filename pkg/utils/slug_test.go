package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Spring Launch 2025":   "spring-launch-2025",
		"  Café & Crème  ":     "cafe-creme",
		"Привет мир":           "privet-mir",
		"---":                  "",
		"You're Not Matching!": "you-re-not-matching",
	}
	for input, want := range cases {
		if got := GenerateSlug(input); got != want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"launch": true, "launch-2": true}
	got, err := UniqueSlug("Launch", func(s string) (bool, error) { return taken[s], nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "launch-3" {
		t.Fatalf("expected launch-3, got %q", got)
	}

	got, err = UniqueSlug("!!!", func(string) (bool, error) { return false, nil })
	if err != nil || !strings.HasPrefix(got, "page-") {
		t.Fatalf("expected a generated slug, got %q %v", got, err)
	}

	boom := errors.New("db down")
	if _, err := UniqueSlug("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
