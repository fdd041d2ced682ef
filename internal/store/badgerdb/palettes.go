package badgerdb

import (
	"context"
	"errors"
	"slices"

	"github.com/chromafy/chromafy-server/internal/domain"
	"github.com/chromafy/chromafy-server/internal/store"
)

// CreatePalette stores a saved palette. The owner must exist.
func (s *Store) CreatePalette(ctx context.Context, palette *domain.SavedPalette) error {
	if err := s.requireOwner(ctx, palette.UserID); err != nil {
		return err
	}
	return s.palettes.Create(ctx, palette.ID, palette)
}

// GetPalette loads a palette by ID.
func (s *Store) GetPalette(ctx context.Context, id string) (*domain.SavedPalette, error) {
	return s.palettes.Get(ctx, id)
}

// ListUserPalettes returns the user's palettes newest first.
func (s *Store) ListUserPalettes(ctx context.Context, userID string) ([]*domain.SavedPalette, error) {
	ids, err := s.palettes.IDsByIndexPrefix(ctx, indexOwner, ownerKey(userID, ""))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.SavedPalette, 0, len(ids))
	for _, id := range ids {
		p, err := s.palettes.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	sortNewestFirst(out)
	return out, nil
}

// ListAllPalettes returns every stored palette, newest first.
func (s *Store) ListAllPalettes(ctx context.Context) ([]*domain.SavedPalette, error) {
	var out []*domain.SavedPalette
	for p, err := range s.palettes.List(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sortNewestFirst(out)
	return out, nil
}

// DeletePalette removes a palette. Missing palettes are ignored.
func (s *Store) DeletePalette(ctx context.Context, id string) error {
	return s.palettes.Delete(ctx, id)
}

// CountUserPalettes counts the user's palettes without loading them.
func (s *Store) CountUserPalettes(ctx context.Context, userID string) (int, error) {
	ids, err := s.palettes.IDsByIndexPrefix(ctx, indexOwner, ownerKey(userID, ""))
	return len(ids), err
}

func sortNewestFirst(palettes []*domain.SavedPalette) {
	slices.SortFunc(palettes, func(a, b *domain.SavedPalette) int {
		switch {
		case a.NewerThan(b):
			return -1
		case b.NewerThan(a):
			return 1
		default:
			return 0
		}
	})
}
