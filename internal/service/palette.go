package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/domain"
	domainerrors "github.com/chromafy/chromafy-server/internal/errors"
	"github.com/chromafy/chromafy-server/internal/export"
	"github.com/chromafy/chromafy-server/internal/id"
	"github.com/chromafy/chromafy-server/internal/media/swatch"
	"github.com/chromafy/chromafy-server/internal/normalize"
	"github.com/chromafy/chromafy-server/internal/search"
	"github.com/chromafy/chromafy-server/internal/store"
)

// PaletteService generates palettes and manages each user's saved library.
type PaletteService struct {
	store     store.PaletteStore
	index     *search.SearchIndex // nil disables search
	swatches  *swatch.Cache       // nil renders every request
	generator *color.Generator
	cfg       config.PaletteConfig
	logger    *slog.Logger

	// saveMu serialises Save so the cap is enforced against a stable list.
	saveMu sync.Mutex
}

// NewPaletteService creates a palette service.
func NewPaletteService(
	store store.PaletteStore,
	index *search.SearchIndex,
	swatches *swatch.Cache,
	cfg config.PaletteConfig,
	logger *slog.Logger,
) *PaletteService {
	return &PaletteService{
		store:     store,
		index:     index,
		swatches:  swatches,
		generator: new(color.Generator),
		cfg:       cfg,
		logger:    logger,
	}
}

// SetGenerator replaces the random source, e.g. with color.NewGenerator(seed).
func (s *PaletteService) SetGenerator(g *color.Generator) {
	s.generator = g
}

// GenerateRequest asks for a palette. Zero values take the configured defaults.
type GenerateRequest struct {
	Base  string
	Mode  string
	Count int
}

// GeneratedPalette is an unsaved palette.
type GeneratedPalette struct {
	Base     string         `json:"base"`
	Mode     string         `json:"mode"`
	Colors   []string       `json:"colors"`
	Swatches []color.Swatch `json:"swatches"`
	BlurHash string         `json:"blurhash,omitempty"`
}

// Generate builds a palette around req.Base. The count is clamped to [1, MaxCount].
func (s *PaletteService) Generate(_ context.Context, req GenerateRequest) (*GeneratedPalette, error) {
	base := req.Base
	if base == "" {
		base = s.cfg.DefaultBase
	}
	base = color.NormalizeHex(base)

	modeName := req.Mode
	if modeName == "" {
		modeName = s.cfg.DefaultMode
	}
	mode := color.ParseMode(modeName)

	count := req.Count
	if count == 0 {
		count = s.cfg.DefaultCount
	}
	count = clampCount(count, s.cfg.MaxCount)

	colors := s.generator.Generate(base, mode, count)

	out := &GeneratedPalette{
		Base:     base,
		Mode:     mode.String(),
		Colors:   colors,
		Swatches: color.DescribeAll(colors),
	}

	if hash, err := swatch.BlurHash(colors); err == nil {
		out.BlurHash = hash
	} else if s.logger != nil {
		s.logger.Debug("blurhash failed", "error", err)
	}

	return out, nil
}

func clampCount(count, maxCount int) int {
	if maxCount <= 0 {
		maxCount = 64
	}
	return min(max(count, 1), maxCount)
}

// ContrastResult compares a foreground and background colour.
type ContrastResult struct {
	Foreground string      `json:"foreground"`
	Background string      `json:"background"`
	Ratio      float64     `json:"ratio"`
	Grade      color.Grade `json:"grade"`
	// Readable is the text colour the engine would pick for the background.
	Readable string `json:"readable"`
}

// Contrast computes the WCAG contrast ratio between fg and bg.
func (s *PaletteService) Contrast(_ context.Context, fg, bg string) *ContrastResult {
	fg = color.NormalizeHex(fg)
	bg = color.NormalizeHex(bg)
	ratio := math.Round(color.ContrastRatio(fg, bg)*100) / 100
	return &ContrastResult{
		Foreground: fg,
		Background: bg,
		Ratio:      ratio,
		Grade:      color.GradeFor(ratio),
		Readable:   color.ReadableText(bg),
	}
}

// SaveRequest is a palette to add to the user's library.
type SaveRequest struct {
	Name   string   `json:"name" validate:"max=200"`
	Mode   string   `json:"mode" validate:"omitempty,palettemode"`
	Colors []string `json:"colors" validate:"required,min=1,dive,hexcolor6"`
}

// Save prepends a palette to the user's library and drops the oldest entries beyond
// SavedLimit. A blank name gets a random "Adjective Noun" one.
func (s *PaletteService) Save(ctx context.Context, userID string, req SaveRequest) (*domain.SavedPalette, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if s.cfg.MaxCount > 0 && len(req.Colors) > s.cfg.MaxCount {
		return nil, domainerrors.Validationf("colors must not have more than %d items", s.cfg.MaxCount)
	}

	name := normalize.PaletteName(req.Name)
	if name == "" {
		name = s.generator.HumanName()
	}

	colors := make([]string, len(req.Colors))
	for i, c := range req.Colors {
		colors[i] = color.NormalizeHex(c)
	}

	mode := ""
	if req.Mode != "" {
		mode = color.ParseMode(req.Mode).String()
	}

	paletteID, err := id.Generate(id.PrefixPalette)
	if err != nil {
		return nil, fmt.Errorf("generate palette ID: %w", err)
	}

	palette := &domain.SavedPalette{
		ID:        paletteID,
		UserID:    userID,
		Name:      name,
		Mode:      mode,
		Colors:    colors,
		CreatedAt: time.Now().UTC(),
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := s.store.CreatePalette(ctx, palette); err != nil {
		return nil, fmt.Errorf("create palette: %w", err)
	}

	if s.index != nil {
		if err := s.index.IndexPalette(palette); err != nil && s.logger != nil {
			s.logger.Warn("Failed to index palette", "palette_id", palette.ID, "error", err)
		}
	}

	if err := s.trim(ctx, userID); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Palette saved",
			"palette_id", palette.ID,
			"user_id", userID,
			"colors", len(colors),
		)
	}

	return palette, nil
}

// trim deletes the user's palettes beyond SavedLimit, oldest first.
func (s *PaletteService) trim(ctx context.Context, userID string) error {
	if s.cfg.SavedLimit <= 0 {
		return nil
	}

	palettes, err := s.store.ListUserPalettes(ctx, userID)
	if err != nil {
		return fmt.Errorf("list palettes: %w", err)
	}
	if len(palettes) <= s.cfg.SavedLimit {
		return nil
	}

	dropped := make([]string, 0, len(palettes)-s.cfg.SavedLimit)
	for _, p := range palettes[s.cfg.SavedLimit:] {
		if err := s.store.DeletePalette(ctx, p.ID); err != nil {
			return fmt.Errorf("delete palette %s: %w", p.ID, err)
		}
		s.forget(p.ID)
		dropped = append(dropped, p.ID)
	}

	if s.index != nil {
		if err := s.index.DeletePalettes(dropped); err != nil && s.logger != nil {
			s.logger.Warn("Failed to de-index palettes", "count", len(dropped), "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Debug("Trimmed saved palettes", "user_id", userID, "dropped", len(dropped))
	}
	return nil
}

// forget drops cached artefacts of a deleted palette.
func (s *PaletteService) forget(paletteID string) {
	if s.swatches == nil {
		return
	}
	if err := s.swatches.Delete(paletteID); err != nil && s.logger != nil {
		s.logger.Warn("Failed to delete cached swatch", "palette_id", paletteID, "error", err)
	}
}

// List returns the user's saved palettes, newest first.
func (s *PaletteService) List(ctx context.Context, userID string) ([]*domain.SavedPalette, error) {
	palettes, err := s.store.ListUserPalettes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list palettes: %w", err)
	}
	return palettes, nil
}

// Get returns one of the user's palettes. Other users' palettes are not found.
func (s *PaletteService) Get(ctx context.Context, userID, paletteID string) (*domain.SavedPalette, error) {
	palette, err := s.store.GetPalette(ctx, paletteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Palette not found")
		}
		return nil, fmt.Errorf("get palette: %w", err)
	}
	if palette.UserID != userID {
		return nil, domainerrors.NotFound("Palette not found")
	}
	return palette, nil
}

// Delete removes one of the user's palettes.
func (s *PaletteService) Delete(ctx context.Context, userID, paletteID string) error {
	if _, err := s.Get(ctx, userID, paletteID); err != nil {
		return err
	}

	if err := s.store.DeletePalette(ctx, paletteID); err != nil {
		return fmt.Errorf("delete palette: %w", err)
	}

	if s.index != nil {
		if err := s.index.DeletePalette(paletteID); err != nil && s.logger != nil {
			s.logger.Warn("Failed to de-index palette", "palette_id", paletteID, "error", err)
		}
	}
	s.forget(paletteID)

	return nil
}

// SearchRequest queries the user's library.
type SearchRequest struct {
	Query  string
	Mode   string
	Limit  int
	Offset int
}

// Search finds the user's palettes by name, colour or mode.
func (s *PaletteService) Search(ctx context.Context, userID string, req SearchRequest) (*search.SearchResult, error) {
	if s.index == nil {
		return nil, domainerrors.Internal("Search is not available")
	}

	params := search.DefaultSearchParams()
	params.Query = req.Query
	params.UserID = userID
	params.Mode = req.Mode
	params.IncludeFacets = true
	if req.Limit > 0 {
		params.Limit = min(req.Limit, 100)
	}
	params.Offset = max(req.Offset, 0)

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search palettes: %w", err)
	}
	return result, nil
}

// ExportResult is a rendered export file.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export renders one of the user's palettes as json, css or toml.
func (s *PaletteService) Export(ctx context.Context, userID, paletteID, format string) (*ExportResult, error) {
	f, ok := export.ParseFormat(format)
	if !ok {
		return nil, domainerrors.ValidationWithDetails("Unsupported export format",
			map[string]string{"format": "must be one of: json css toml"})
	}

	palette, err := s.Get(ctx, userID, paletteID)
	if err != nil {
		return nil, err
	}

	data, err := export.Render(export.Palette{
		Name:      palette.Name,
		Mode:      palette.Mode,
		Colors:    palette.Colors,
		CreatedAt: palette.CreatedAt,
	}, f)
	if err != nil {
		return nil, fmt.Errorf("export palette: %w", err)
	}

	return &ExportResult{
		Filename:    export.Filename(palette.Name, f),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// SwatchResult is a PNG strip of a palette.
type SwatchResult struct {
	Data []byte
	ETag string
}

// SwatchPNG returns the labelled PNG strip for one of the user's palettes, rendering
// and caching it on first use.
func (s *PaletteService) SwatchPNG(ctx context.Context, userID, paletteID string) (*SwatchResult, error) {
	palette, err := s.Get(ctx, userID, paletteID)
	if err != nil {
		return nil, err
	}

	if s.swatches != nil {
		data, err := s.swatches.Get(palette.ID)
		if err == nil {
			return &SwatchResult{Data: data, ETag: swatch.Hash(data)}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && s.logger != nil {
			s.logger.Warn("Failed to read cached swatch", "palette_id", palette.ID, "error", err)
		}
	}

	data, err := swatch.PNG(palette.Colors, swatch.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("render swatch: %w", err)
	}

	if s.swatches != nil {
		if err := s.swatches.Save(palette.ID, data); err != nil && s.logger != nil {
			s.logger.Warn("Failed to cache swatch", "palette_id", palette.ID, "error", err)
		}
	}

	return &SwatchResult{Data: data, ETag: swatch.Hash(data)}, nil
}

// IndexedCount returns how many palettes the search index holds.
func (s *PaletteService) IndexedCount() (uint64, error) {
	if s.index == nil {
		return 0, domainerrors.Internal("Search is not available")
	}
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the search index from the store and returns how many
// palettes were indexed.
func (s *PaletteService) ReindexAll(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}

	palettes, err := s.store.ListAllPalettes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list palettes: %w", err)
	}

	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	if err := s.index.IndexPalettes(palettes); err != nil {
		return 0, fmt.Errorf("index palettes: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Reindexed palettes", "count", len(palettes))
	}
	return len(palettes), nil
}
