package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/export"
	"github.com/chromafy/chromafy-server/internal/media/swatch"
	"github.com/chromafy/chromafy-server/internal/service"
)

const (
	maxCount   = 64
	formatText = "text"
)

type generateOptions struct {
	base   string
	mode   string
	count  int
	format string
	png    string
	seed   uint64
	name   string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a palette",
		Long: `Generate a palette around a base colour.

Modes: ` + modeList() + `
Formats: text, json, css, toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	opts.bindFlags(cmd.Flags())

	return cmd
}

func (o *generateOptions) bindFlags(f *pflag.FlagSet) {
	f.StringVarP(&o.base, "base", "b", color.DefaultBase, "base colour (hex, # optional)")
	f.StringVarP(&o.mode, "mode", "m", string(color.DefaultMode), "generation mode")
	f.IntVarP(&o.count, "count", "n", color.DefaultCount, fmt.Sprintf("number of colours (1-%d)", maxCount))
	f.StringVarP(&o.format, "format", "f", formatText, "output format (text, json, css, toml)")
	f.StringVar(&o.png, "png", "", "also write a PNG swatch strip to this file")
	f.Uint64Var(&o.seed, "seed", 0, "random seed for reproducible output (0 = random)")
	f.StringVar(&o.name, "name", "", "palette name used by exports (default: generated)")
	f.SortFlags = false
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	mode := color.ParseMode(opts.mode)
	if !mode.Known() {
		return fmt.Errorf("unknown mode %q (want one of %s)", opts.mode, modeList())
	}
	if opts.count < 1 || opts.count > maxCount {
		return fmt.Errorf("count must be between 1 and %d", maxCount)
	}

	format := strings.ToLower(strings.TrimSpace(opts.format))
	var exportFormat export.Format
	if format != formatText {
		var ok bool
		if exportFormat, ok = export.ParseFormat(format); !ok {
			return fmt.Errorf("unknown format %q (want text, json, css or toml)", opts.format)
		}
	}

	engine := newEngine(opts.seed)
	palette, err := engine.Generate(cmd.Context(), service.GenerateRequest{
		Base:  opts.base,
		Mode:  string(mode),
		Count: opts.count,
	})
	if err != nil {
		return err
	}

	if opts.png != "" {
		if err := writePNG(opts.png, palette.Colors); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", opts.png)
	}

	out := cmd.OutOrStdout()

	if format == formatText {
		r, err := root.renderer(out)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s palette from %s\n\n", palette.Mode, palette.Base)
		fmt.Fprint(out, renderSwatches(r, palette.Swatches))
		return nil
	}

	name := opts.name
	if name == "" {
		name = nameGenerator(opts.seed).HumanName()
	}

	data, err := export.Render(export.Palette{Name: name, Mode: palette.Mode, Colors: palette.Colors}, exportFormat)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func writePNG(path string, colors []string) error {
	data, err := swatch.PNG(colors, swatch.DefaultOptions())
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- output file chosen by the user
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// nameGenerator derives names from a different stream than the colours so a
// seeded palette and its name are both reproducible.
func nameGenerator(seed uint64) *color.Generator {
	if seed == 0 {
		return new(color.Generator)
	}
	return color.NewGenerator(^seed)
}

func modeList() string {
	modes := color.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = strings.ToLower(m.String())
	}
	return strings.Join(names, ", ")
}
