// Package cli implements the chromafy command: local palette generation, contrast
// checks and terminal swatch previews.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/logger"
	"github.com/chromafy/chromafy-server/internal/service"
)

var version = "dev"

// Colour modes for --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type rootOptions struct {
	color string
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chromafy",
		Short: "Generate colour palettes and check contrast",
		Long: `Chromafy generates harmonious colour palettes from a base colour and grades
how readable text is on each swatch.

Examples:
  # Five analogous colours around a teal
  chromafy generate --base 0f766e --mode analogous

  # Reproducible palette written as CSS variables
  chromafy generate --seed 42 --format css

  # Check a text/background pair
  chromafy contrast "#777777" "#ffffff"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.color, "color", colorAuto, "colour output (auto, always, never)")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newContrastCmd(opts),
		newModesCmd(),
	)

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// renderer returns a lipgloss renderer for w honouring --color.
func (o *rootOptions) renderer(w io.Writer) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w)
	switch o.color {
	case colorAuto, "":
	case colorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case colorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("invalid --color %q (want auto, always or never)", o.color)
	}
	return r, nil
}

// newEngine returns a palette service with no persistence; only Generate and
// Contrast are used locally.
func newEngine(seed uint64) *service.PaletteService {
	svc := service.NewPaletteService(nil, nil, nil, config.PaletteConfig{
		DefaultBase:  color.DefaultBase,
		DefaultMode:  string(color.DefaultMode),
		DefaultCount: color.DefaultCount,
		MaxCount:     maxCount,
	}, logger.Discard().Logger)
	if seed != 0 {
		svc.SetGenerator(color.NewGenerator(seed))
	}
	return svc
}
