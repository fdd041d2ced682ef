// Package export renders palettes as downloadable theme files.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/normalize"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSS  Format = "css"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSS, FormatTOML}
}

// ParseFormat matches a format name case-insensitively. ok is false for unknown names.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, true
		}
	}
	return f, false
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSS:
		return "text/css; charset=utf-8"
	case FormatTOML:
		return "application/toml"
	default:
		return "application/json"
	}
}

// Palette is the input to every exporter.
type Palette struct {
	Name      string
	Mode      string
	Colors    []string
	CreatedAt time.Time
}

// Document is the structured form written as JSON or TOML.
type Document struct {
	Name      string       `json:"name" toml:"name"`
	Mode      string       `json:"mode" toml:"mode"`
	CreatedAt *time.Time   `json:"created_at,omitempty" toml:"created_at,omitempty"`
	Colors    []string     `json:"colors" toml:"colors"`
	Swatches  []SwatchInfo `json:"swatches" toml:"swatches"`
}

// SwatchInfo is one colour with its readable text colour and WCAG grade.
type SwatchInfo struct {
	Hex   string  `json:"hex" toml:"hex"`
	Text  string  `json:"text" toml:"text"`
	Ratio float64 `json:"ratio" toml:"ratio"`
	Grade string  `json:"grade" toml:"grade"`
}

// NewDocument normalises the palette's colours and describes each one.
func NewDocument(p Palette) Document {
	doc := Document{
		Name:     p.Name,
		Mode:     p.Mode,
		Colors:   make([]string, len(p.Colors)),
		Swatches: make([]SwatchInfo, len(p.Colors)),
	}
	if !p.CreatedAt.IsZero() {
		ts := p.CreatedAt.UTC()
		doc.CreatedAt = &ts
	}
	for i, sw := range swatches(p.Colors) {
		doc.Colors[i] = sw.Hex
		doc.Swatches[i] = SwatchInfo{Hex: sw.Hex, Text: sw.Text, Ratio: sw.Ratio, Grade: string(sw.Grade)}
	}
	return doc
}

// swatches normalises colors to #rrggbb before describing them.
func swatches(colors []string) []color.Swatch {
	normalized := make([]string, len(colors))
	for i, c := range colors {
		normalized[i] = color.NormalizeHex(c)
	}
	return color.DescribeAll(normalized)
}

// Render encodes p in format f.
func Render(p Palette, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(p)
	case FormatCSS:
		return CSS(p), nil
	case FormatTOML:
		return TOML(p)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}

// JSON encodes p as indented JSON.
func JSON(p Palette) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// TOML encodes p as a TOML theme with one [[swatches]] table per colour.
func TOML(p Palette) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(NewDocument(p)); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeTOML reads a document written by TOML.
func DecodeTOML(data []byte) (*Document, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return &doc, nil
}

// CSS writes custom properties on :root, named after the palette:
//
//	--sunset-glow-1: #ff5500;
//	--sunset-glow-1-text: #000000;
func CSS(p Palette) []byte {
	prefix := VariablePrefix(p.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "/* %s", commentSafe(p.Name))
	if p.Mode != "" {
		fmt.Fprintf(&b, " (%s)", commentSafe(p.Mode))
	}
	b.WriteString(" */\n:root {\n")
	for i, sw := range swatches(p.Colors) {
		fmt.Fprintf(&b, "  --%s-%d: %s;\n", prefix, i+1, sw.Hex)
		fmt.Fprintf(&b, "  --%s-%d-text: %s;\n", prefix, i+1, sw.Text)
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

// VariablePrefix is the slug used for CSS custom property names.
func VariablePrefix(name string) string {
	return normalize.Slug(name, "palette")
}

// Filename returns a download name such as "sunset-glow.css".
func Filename(name string, f Format) string {
	return normalize.Slug(name, "palette") + "." + string(f)
}

func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
