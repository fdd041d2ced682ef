package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newContrastCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <fg> <bg>",
		Short: "Grade the contrast of text colour fg on background bg",
		Example: `  chromafy contrast ffffff 000000
  chromafy contrast "#777777" "#ffffff"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r, err := root.renderer(out)
			if err != nil {
				return err
			}

			res := newEngine(0).Contrast(cmd.Context(), args[0], args[1])

			sample := r.NewStyle().
				Foreground(lipgloss.Color(res.Foreground)).
				Background(lipgloss.Color(res.Background)).
				Padding(0, 2).
				Render("Sample text")

			fmt.Fprintf(out, "%s  %s on %s\n", sample, res.Foreground, res.Background)
			fmt.Fprintf(out, "Ratio: %.2f:1\n", res.Ratio)
			fmt.Fprintf(out, "Grade: %s\n", gradeStyles(r)[res.Grade].Render(string(res.Grade)))
			return nil
		},
	}
}
