package collectors

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics strips combining marks so feed-supplied text compares
// cleanly against catalog values (e.g. "Pokémon" and "Pokemon")
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeCategory canonicalizes a feed category: diacritics removed,
// lowercased, inner whitespace collapsed to underscores. Feeds label the
// same category inconsistently ("Blind Box", "blind-box", "BLIND  BOX").
func NormalizeCategory(s string) string {
	c := RemoveDiacritics(strings.TrimSpace(s))
	c = strings.ToLower(c)
	c = strings.ReplaceAll(c, "-", " ")
	return strings.Join(strings.Fields(c), "_")
}

// NormalizeTags canonicalizes and deduplicates a tag list, preserving the
// first occurrence order
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, t := range tags {
		n := strings.ToLower(RemoveDiacritics(strings.TrimSpace(t)))
		n = strings.Join(strings.Fields(n), " ")
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
