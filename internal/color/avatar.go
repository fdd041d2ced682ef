package color

// Avatar colours share one saturation and lightness so every user gets a muted,
// readable tone; only the hue depends on the ID.
const (
	avatarSaturation = 0.4
	avatarLightness  = 0.65
)

// ForUser returns a stable #rrggbb colour for a user ID.
func ForUser(userID string) string {
	h := 0
	for _, c := range userID {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	hue := float64(h % 360)
	if hue < 0 {
		// -MinInt overflows back to itself.
		hue += 360
	}

	return HSL{H: hue, S: avatarSaturation, L: avatarLightness}.RGB().Hex()
}
