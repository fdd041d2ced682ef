package color

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
)

// Mode selects a palette generation strategy.
type Mode string

// Supported modes.
const (
	ModeRandom        Mode = "Random"
	ModeMonochrome    Mode = "Monochrome"
	ModeAnalogous     Mode = "Analogous"
	ModeComplementary Mode = "Complementary"
	ModeTriadic       Mode = "Triadic"
	ModeTetradic      Mode = "Tetradic"
)

// Defaults used when a caller does not choose.
const (
	DefaultBase  = "#7c3aed"
	DefaultMode  = ModeRandom
	DefaultCount = 5

	// Range offered by interactive pickers.
	MinPickerCount = 3
	MaxPickerCount = 8
)

// Hue offsets and lightness steps used by the strategies.
const (
	analogousStep   = 20.0
	monoLightenStep = 0.35
	monoDarkenStep  = 0.25
)

var (
	triadicOffsets  = []float64{0, 120, 240}
	tetradicOffsets = []float64{0, 90, 180, 270}
)

var modeOrder = []Mode{
	ModeRandom,
	ModeMonochrome,
	ModeAnalogous,
	ModeComplementary,
	ModeTriadic,
	ModeTetradic,
}

// Modes lists the supported modes in display order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

// ParseMode resolves s case-insensitively. Unknown names are returned as-is; Generate
// treats them as a constant palette.
func ParseMode(s string) Mode {
	s = strings.TrimSpace(s)
	for _, m := range modeOrder {
		if strings.EqualFold(string(m), s) {
			return m
		}
	}
	return Mode(s)
}

// Known reports whether m is one of the supported modes.
func (m Mode) Known() bool {
	_, ok := strategies[m]
	return ok
}

func (m Mode) String() string { return string(m) }

type strategy func(g *Generator, base string, count int) []string

var strategies = map[Mode]strategy{
	ModeRandom:        (*Generator).random,
	ModeMonochrome:    (*Generator).monochrome,
	ModeAnalogous:     (*Generator).analogous,
	ModeComplementary: (*Generator).complementary,
	ModeTriadic:       (*Generator).triadic,
	ModeTetradic:      (*Generator).tetradic,
}

// Generator produces palettes. Its zero value draws from the process-wide random
// source; NewGenerator makes a reproducible one.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator whose random colours are fully determined by seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var defaultGenerator = &Generator{}

// intN returns a value in [0,n).
func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// RandomHex returns a uniformly random colour in [#000000, #fffffe].
func (g *Generator) RandomHex() string {
	return fmt.Sprintf("#%06x", g.intN(0xffffff))
}

// Generate returns exactly count colours derived from base using mode. count <= 0
// yields an empty palette.
func (g *Generator) Generate(base string, mode Mode, count int) []string {
	if count <= 0 {
		return []string{}
	}
	fn, ok := strategies[mode]
	if !ok {
		out := make([]string, count)
		for i := range out {
			out[i] = base
		}
		return out
	}
	return fn(g, base, count)
}

func (g *Generator) random(_ string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = g.RandomHex()
	}
	return out
}

func (g *Generator) monochrome(base string, count int) []string {
	if count <= 0 {
		return []string{}
	}
	out := make([]string, 0, count)
	for i := range count {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		if i%2 == 0 {
			out = append(out, Lighten(base, t*monoLightenStep))
		} else {
			out = append(out, Darken(base, t*monoDarkenStep))
		}
	}
	return g.uniqueTrim(out, count)
}

func (g *Generator) analogous(base string, count int) []string {
	start := -math.Floor(float64(count)/2) * analogousStep
	out := make([]string, count)
	for i := range out {
		out[i] = RotateHue(base, start+float64(i)*analogousStep)
	}
	return out
}

func (g *Generator) complementary(base string, count int) []string {
	half := (count + 1) / 2
	out := g.monochrome(base, half)
	return append(out, g.monochrome(RotateHue(base, 180), count-half)...)
}

func (g *Generator) triadic(base string, count int) []string {
	return g.harmonic(base, count, triadicOffsets)
}

func (g *Generator) tetradic(base string, count int) []string {
	return g.harmonic(base, count, tetradicOffsets)
}

// harmonic rotates base by each offset and fills every slot, starting at the
// first, with the first monochrome step of seeds[i%len(seeds)]. That step is the
// seed itself, but drawing it through monochrome keeps a seeded Generator's
// random stream in step for seeds whose darkened variant collides.
func (g *Generator) harmonic(base string, count int, offsets []float64) []string {
	seeds := make([]string, len(offsets))
	for i, deg := range offsets {
		seeds[i] = RotateHue(base, deg)
	}

	out := make([]string, 0, max(count, 0))
	for len(out) < count {
		seed := seeds[len(out)%len(seeds)]
		out = append(out, g.monochrome(seed, 2)[0])
	}
	return out
}

// Generate uses the process-wide generator.
func Generate(base string, mode Mode, count int) []string {
	return defaultGenerator.Generate(base, mode, count)
}

// RandomHex uses the process-wide generator.
func RandomHex() string {
	return defaultGenerator.RandomHex()
}
