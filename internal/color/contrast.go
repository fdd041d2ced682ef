package color

import (
	"math"
	"strings"
)

// readableThreshold is the luminance above which black text is chosen.
// It is intentionally higher than the WCAG midpoint.
const readableThreshold = 0.35

// Grade is a WCAG text-contrast rating.
type Grade string

// Contrast grades.
const (
	GradeAA      Grade = "AA"
	GradeAALarge Grade = "AA Large"
	GradeFail    Grade = "Fail"
)

// Swatch describes how a colour is displayed: its label, the text colour drawn on
// top of it, and how well that text reads.
type Swatch struct {
	Hex   string  `json:"hex"`
	Label string  `json:"label"`
	Text  string  `json:"text"`
	Ratio float64 `json:"ratio"`
	Grade Grade   `json:"grade"`
}

// Luminance returns the WCAG relative luminance of hex, in [0,1].
func Luminance(hex string) float64 {
	c := HexToRGB(hex)
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns (Llighter+0.05)/(Ldarker+0.05). It is symmetric and at least 1.
func ContrastRatio(a, b string) float64 {
	la := Luminance(a) + 0.05
	lb := Luminance(b) + 0.05
	if la > lb {
		return la / lb
	}
	return lb / la
}

// ReadableText picks black or white text for the background bg.
func ReadableText(bg string) string {
	if Luminance(bg) > readableThreshold {
		return Black
	}
	return White
}

// GradeFor maps a contrast ratio to its grade.
func GradeFor(ratio float64) Grade {
	switch {
	case ratio >= 4.5:
		return GradeAA
	case ratio >= 3:
		return GradeAALarge
	default:
		return GradeFail
	}
}

// Describe builds the swatch for hex. The ratio is rounded to two decimals before
// grading, matching what is displayed.
func Describe(hex string) Swatch {
	text := ReadableText(hex)
	ratio := math.Round(ContrastRatio(hex, text)*100) / 100
	return Swatch{
		Hex:   hex,
		Label: strings.ToUpper(hex),
		Text:  text,
		Ratio: ratio,
		Grade: GradeFor(ratio),
	}
}

// DescribeAll describes every colour in order.
func DescribeAll(colors []string) []Swatch {
	out := make([]Swatch, len(colors))
	for i, c := range colors {
		out[i] = Describe(c)
	}
	return out
}
