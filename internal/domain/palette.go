package domain

import (
	"time"

	"github.com/chromafy/chromafy-server/internal/color"
)

// SavedPalette is a named palette kept in a user's library.
type SavedPalette struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	Colors    []string  `json:"colors"`
	CreatedAt time.Time `json:"created_at"`
}

// Swatches describes each colour with its readable text colour and contrast grade.
func (p *SavedPalette) Swatches() []color.Swatch {
	return color.DescribeAll(p.Colors)
}

// NewerThan orders palettes newest first, breaking ties by ID so the order is stable.
func (p *SavedPalette) NewerThan(other *SavedPalette) bool {
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.After(other.CreatedAt)
	}
	return p.ID > other.ID
}
