// Package swatch renders palettes as PNG strips and computes BlurHash placeholders
// for them.
package swatch

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	chroma "github.com/chromafy/chromafy-server/internal/color"
)

// Default strip geometry.
const (
	DefaultWidth  = 120
	DefaultHeight = 80
)

// ErrNoColors is returned when asked to render an empty palette.
var ErrNoColors = errors.New("swatch: palette has no colors")

// Options controls the rendered strip.
type Options struct {
	Width  int  // Width of each swatch in pixels
	Height int  // Height of the strip in pixels
	Labels bool // Draw each hex code in its readable text colour
}

// DefaultOptions returns labelled 120x80 swatches.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, Labels: true}
}

// Render draws colors left to right, one block per colour.
func Render(colors []string, opts Options) (*image.RGBA, error) {
	if len(colors) == 0 {
		return nil, ErrNoColors
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width*len(colors), opts.Height))

	face := basicfont.Face7x13
	for i, hex := range colors {
		rect := image.Rect(i*opts.Width, 0, (i+1)*opts.Width, opts.Height)
		draw.Draw(img, rect, image.NewUniform(toNRGBA(hex)), image.Point{}, draw.Src)

		if !opts.Labels {
			continue
		}

		label := chroma.NormalizeHex(hex)
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(toNRGBA(chroma.ReadableText(hex))),
			Face: face,
		}
		textWidth := d.MeasureString(label).Ceil()
		x := rect.Min.X + (opts.Width-textWidth)/2
		y := opts.Height - face.Descent - 6
		d.Dot = fixed.P(max(x, rect.Min.X), y)
		d.DrawString(label)
	}

	return img, nil
}

// EncodePNG renders colors and writes the PNG to w.
func EncodePNG(w io.Writer, colors []string, opts Options) error {
	img, err := Render(colors, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG renders colors and returns the encoded bytes.
func PNG(colors []string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, colors, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNRGBA(hex string) color.NRGBA {
	c := chroma.HexToRGB(hex)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
