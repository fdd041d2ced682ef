// Package color implements the palette engine: hex/RGB/HSL conversions, hue rotation,
// lightness adjustment, WCAG contrast and the palette generation strategies.
//
// Every function accepts possibly malformed input and degrades instead of failing:
// a bad hex string becomes black or a zero-padded approximation, an unknown mode
// becomes a constant palette.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Exactly six hex digits after a leading '#'.
	canonicalHexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	// Three two-digit channel groups with an optional '#'.
	channelsRe = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
)

// Black and White are the two readable text colours.
const (
	Black = "#000000"
	White = "#ffffff"
)

// RGB is a 24-bit sRGB colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb in lowercase.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NormalizeHex sanitises user input into a #rrggbb string.
//
// Input that is already six hex digits is only lowercased. Anything else is cut to its
// first six characters and right-padded with '0', so "abc" becomes "#abc000". The
// characters themselves are not validated; HexToRGB maps leftovers to black.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if canonicalHexRe.MatchString(s) {
		return strings.ToLower(s)
	}

	digits := []rune(strings.Replace(s, "#", "", 1))
	if len(digits) > 6 {
		digits = digits[:6]
	}
	out := string(digits) + strings.Repeat("0", 6-len(digits))
	return "#" + strings.ToLower(out)
}

// HexToRGB parses #rrggbb (with or without '#', any case). Unparseable input yields black.
func HexToRGB(s string) RGB {
	m := channelsRe.FindStringSubmatch(s)
	if m == nil {
		return RGB{}
	}
	return RGB{R: parseChannel(m[1]), G: parseChannel(m[2]), B: parseChannel(m[3])}
}

func parseChannel(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}

// RGBToHex clamps each channel to [0,255], rounds it and formats the result as #rrggbb.
func RGBToHex(r, g, b float64) string {
	return RGB{R: toChannel(r), G: toChannel(g), B: toChannel(b)}.Hex()
}

func toChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(Clamp(v, 0, 255)))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
