// Package search provides full-text search over saved palettes using Bleve.
// Palettes are found by name (stemmed, accent-insensitive, typo-tolerant), by an
// exact colour they contain, or by generation mode.
package search

import (
	"github.com/chromafy/chromafy-server/internal/domain"
	"github.com/chromafy/chromafy-server/internal/normalize"
)

// PaletteDocument is the indexed form of a saved palette.
type PaletteDocument struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	NameFolded string   `json:"name_folded"`
	Mode       string   `json:"mode"`
	Colors     []string `json:"colors"`
	CreatedAt  int64    `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map keyed by the field names used in the mapping.
func (d *PaletteDocument) ToMap() map[string]interface{} {
	colors := make([]interface{}, len(d.Colors))
	for i, c := range d.Colors {
		colors[i] = c
	}

	return map[string]interface{}{
		"id":          d.ID,
		"user_id":     d.UserID,
		"name":        d.Name,
		"name_folded": d.NameFolded,
		"mode":        d.Mode,
		"colors":      colors,
		"created_at":  d.CreatedAt,
	}
}

// PaletteToDocument converts a saved palette to a search document.
func PaletteToDocument(p *domain.SavedPalette) *PaletteDocument {
	return &PaletteDocument{
		ID:         p.ID,
		UserID:     p.UserID,
		Name:       p.Name,
		NameFolded: normalize.Fold(p.Name),
		Mode:       p.Mode,
		Colors:     append([]string(nil), p.Colors...),
		CreatedAt:  p.CreatedAt.UnixMilli(),
	}
}
