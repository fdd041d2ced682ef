package color

var (
	nameAdjectives = []string{
		"Vivid", "Calm", "Moody", "Fresh", "Neon", "Warm",
		"Ocean", "Aurora", "Sunset", "Misty", "Retro", "Jazzy",
	}
	nameNouns = []string{
		"Dream", "Blend", "Harmony", "Storm", "Sand", "Forest",
		"Candy", "Glow", "Pop", "Twilight", "Spectrum", "Pulse",
	}
)

// HumanName returns a random "<Adjective> <Noun>" palette name.
func (g *Generator) HumanName() string {
	return nameAdjectives[g.intN(len(nameAdjectives))] + " " + nameNouns[g.intN(len(nameNouns))]
}

// HumanName uses the process-wide generator.
func HumanName() string {
	return defaultGenerator.HumanName()
}
