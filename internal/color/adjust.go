package color

// Lighten adds 255*amount to every channel. The result is clamped, so amounts
// outside [0,1] are accepted.
func Lighten(hex string, amount float64) string {
	return shift(hex, 255*amount)
}

// Darken subtracts 255*amount from every channel.
func Darken(hex string, amount float64) string {
	return shift(hex, -255*amount)
}

func shift(hex string, delta float64) string {
	c := HexToRGB(hex)
	return RGBToHex(float64(c.R)+delta, float64(c.G)+delta, float64(c.B)+delta)
}
