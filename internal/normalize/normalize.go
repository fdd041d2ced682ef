// Package normalize cleans user-supplied text: palette names, search queries and
// file-name slugs.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the longest palette name kept, in runes.
const MaxNameLength = 80

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphensRe = regexp.MustCompile(`-+`)

	lower = cases.Lower(language.Und)
)

// PaletteName composes the name to NFC, drops control characters, collapses runs of
// whitespace and truncates to MaxNameLength runes. Case is preserved.
func PaletteName(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	if runes := []rune(s); len(runes) > MaxNameLength {
		s = strings.TrimSpace(string(runes[:MaxNameLength]))
	}
	return s
}

// Fold lowercases s and strips diacritics so "Crème Brûlée" matches "creme brulee".
func Fold(s string) string {
	decomposed := norm.NFKD.String(s)
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)
	return lower.String(norm.NFC.String(stripped))
}

// Slug converts s to a lowercase ASCII slug for file names.
// "Sunset Glow" -> "sunset-glow", "Crème Brûlée!" -> "creme-brulee".
// Returns fallback when nothing survives.
func Slug(s, fallback string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	s = strings.ToLower(s)
	s = nonAlphanumericRe.ReplaceAllString(s, "-")
	s = multipleHyphensRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return fallback
	}
	return s
}
