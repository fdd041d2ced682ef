package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromafy/chromafy-server/internal/domain"
)

// paletteColumns must match the scan order in scanPalette.
const paletteColumns = `id, user_id, name, mode, colors, created_at`

// Newest first, ties broken by ID to match domain.SavedPalette.NewerThan.
const paletteOrder = ` ORDER BY created_at DESC, id DESC`

func scanPalette(scanner interface{ Scan(dest ...any) error }) (*domain.SavedPalette, error) {
	var (
		p                 domain.SavedPalette
		colors, createdAt string
	)

	if err := scanner.Scan(&p.ID, &p.UserID, &p.Name, &p.Mode, &colors, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(colors), &p.Colors); err != nil {
		return nil, fmt.Errorf("decode colors of %s: %w", p.ID, err)
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) queryPalettes(ctx context.Context, query string, args ...any) ([]*domain.SavedPalette, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	palettes := []*domain.SavedPalette{}
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return palettes, rows.Err()
}

// CreatePalette inserts a saved palette.
func (s *Store) CreatePalette(ctx context.Context, palette *domain.SavedPalette) error {
	colors, err := json.Marshal(palette.Colors)
	if err != nil {
		return fmt.Errorf("encode colors: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO palettes (`+paletteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		palette.ID,
		palette.UserID,
		palette.Name,
		palette.Mode,
		string(colors),
		formatTime(palette.CreatedAt),
	)
	return mapError(err)
}

// GetPalette loads a palette by ID.
func (s *Store) GetPalette(ctx context.Context, id string) (*domain.SavedPalette, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+paletteColumns+` FROM palettes WHERE id = ?`, id)
	p, err := scanPalette(row)
	return p, mapError(err)
}

// ListUserPalettes returns the user's palettes newest first.
func (s *Store) ListUserPalettes(ctx context.Context, userID string) ([]*domain.SavedPalette, error) {
	return s.queryPalettes(ctx,
		`SELECT `+paletteColumns+` FROM palettes WHERE user_id = ?`+paletteOrder, userID)
}

// ListAllPalettes returns every stored palette, newest first.
func (s *Store) ListAllPalettes(ctx context.Context) ([]*domain.SavedPalette, error) {
	return s.queryPalettes(ctx, `SELECT `+paletteColumns+` FROM palettes`+paletteOrder)
}

// DeletePalette removes a palette. Missing palettes are ignored.
func (s *Store) DeletePalette(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM palettes WHERE id = ?`, id)
	return err
}

// CountUserPalettes counts the user's palettes.
func (s *Store) CountUserPalettes(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM palettes WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
