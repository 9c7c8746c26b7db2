package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

var cyrillic = strings.NewReplacer(
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d", "е", "e", "ё", "yo",
	"ж", "zh", "з", "z", "и", "i", "й", "y", "к", "k", "л", "l", "м", "m",
	"н", "n", "о", "o", "п", "p", "р", "r", "с", "s", "т", "t", "у", "u",
	"ф", "f", "х", "h", "ц", "ts", "ч", "ch", "ш", "sh", "щ", "sch", "ъ", "",
	"ы", "y", "ь", "", "э", "e", "ю", "yu", "я", "ya",
)

// GenerateSlug turns a title into lowercase words joined by hyphens.
// Accents are stripped and Cyrillic is transliterated.
func GenerateSlug(text string) string {
	text = cyrillic.Replace(strings.ToLower(text))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = nonSlugChars.ReplaceAllString(text, "-")
	return strings.Trim(text, "-")
}

// UniqueSlug returns base, or base with the smallest numeric suffix that
// taken reports as free. An empty base gets a random slug.
func UniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	base = GenerateSlug(base)
	if base == "" {
		base = "page-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	}

	candidate := base
	for i := 2; i < 1000; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + uuid.NewString(), nil
}
