package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chromafy/chromafy-server/internal/color"
)

const swatchWidth = 14

// renderSwatches draws one line per colour: the hex label on its own colour,
// followed by the text contrast ratio and grade.
func renderSwatches(r *lipgloss.Renderer, swatches []color.Swatch) string {
	grades := gradeStyles(r)

	var b strings.Builder
	for _, sw := range swatches {
		block := r.NewStyle().
			Background(lipgloss.Color(sw.Hex)).
			Foreground(lipgloss.Color(sw.Text)).
			Width(swatchWidth).
			Align(lipgloss.Center).
			Render(sw.Label)

		fmt.Fprintf(&b, "%s  %6.2f:1  %s\n", block, sw.Ratio, grades[sw.Grade].Render(string(sw.Grade)))
	}
	return b.String()
}

func gradeStyles(r *lipgloss.Renderer) map[color.Grade]lipgloss.Style {
	return map[color.Grade]lipgloss.Style{
		color.GradeAA:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		color.GradeAALarge: r.NewStyle().Foreground(lipgloss.Color("3")),
		color.GradeFail:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
