// Package textutil holds small text helpers shared by the gateways.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLen caps slugs so artifact names stay well under filesystem limits.
const maxSlugLen = 60

// Slug turns an episode title into a filesystem-safe name fragment:
// diacritics stripped, lowercased, runs of non-alphanumerics collapsed to a
// single dash, capped at 60 characters. Uniqueness of artifact names comes
// from the item ID prefix, not from the slug.
func Slug(title string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}

	return strings.Trim(b.String(), "-")
}
