package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chromafy/chromafy-server/internal/color"
)

var modeDescriptions = map[color.Mode]string{
	color.ModeRandom:        "independent random colours",
	color.ModeMonochrome:    "lighter and darker steps of the base",
	color.ModeAnalogous:     "neighbouring hues 20° apart",
	color.ModeComplementary: "the base and its opposite hue",
	color.ModeTriadic:       "three hues 120° apart",
	color.ModeTetradic:      "four hues 90° apart",
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List palette generation modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, m := range color.Modes() {
				marker := " "
				if m == color.DefaultMode {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-14s %s\n", marker, m, modeDescriptions[m])
			}
			return nil
		},
	}
}
