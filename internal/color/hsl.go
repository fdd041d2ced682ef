package color

import "math"

// HSL is the hue/saturation/lightness form used while rotating hues.
// H is in degrees [0,360), S and L are in [0,1].
type HSL struct {
	H, S, L float64
}

// ToHSL converts an RGB colour using the max/min channel method.
func ToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: h / 6 * 360, S: s, L: l}
}

// RGB converts back with the six-sector chroma method, rounding each channel.
func (c HSL) RGB() RGB {
	h := c.H
	chroma := (1 - math.Abs(2*c.L-1)) * c.S
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := c.L - chroma/2

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1 = chroma, x
	case h < 120:
		r1, g1 = x, chroma
	case h < 180:
		g1, b1 = chroma, x
	case h < 240:
		g1, b1 = x, chroma
	case h < 300:
		r1, b1 = x, chroma
	default:
		r1, b1 = chroma, x
	}

	return RGB{
		R: toChannel((r1 + m) * 255),
		G: toChannel((g1 + m) * 255),
		B: toChannel((b1 + m) * 255),
	}
}

// RotateHue shifts the hue of hex by deg degrees, wrapping into [0,360).
// Saturation and lightness are kept; channels may move by one from rounding.
func RotateHue(hex string, deg float64) string {
	hsl := ToHSL(HexToRGB(hex))
	hsl.H = math.Mod(hsl.H+deg, 360)
	if hsl.H < 0 {
		hsl.H += 360
	}
	return hsl.RGB().Hex()
}
