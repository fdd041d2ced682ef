package api

import (
	"context"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/domain"
	"github.com/chromafy/chromafy-server/internal/search"
	"github.com/chromafy/chromafy-server/internal/service"
)

func (s *Server) registerPaletteRoutes() {
	bearer := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "listPalettes",
		Method:      http.MethodGet,
		Path:        "/api/v1/palettes",
		Summary:     "List saved palettes",
		Description: "Returns the caller's saved palettes, newest first",
		Tags:        []string{"Saved Palettes"},
		Security:    bearer,
	}, s.handleListPalettes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "savePalette",
		Method:        http.MethodPost,
		Path:          "/api/v1/palettes",
		Summary:       "Save palette",
		Description:   "Adds a palette to the caller's library. The oldest palettes beyond the library limit are dropped.",
		Tags:          []string{"Saved Palettes"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleSavePalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchPalettes",
		Method:      http.MethodGet,
		Path:        "/api/v1/palettes/search",
		Summary:     "Search saved palettes",
		Description: "Full-text search over the caller's palettes by name, colour or mode",
		Tags:        []string{"Saved Palettes"},
		Security:    bearer,
	}, s.handleSearchPalettes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPalette",
		Method:      http.MethodGet,
		Path:        "/api/v1/palettes/{id}",
		Summary:     "Get saved palette",
		Tags:        []string{"Saved Palettes"},
		Security:    bearer,
	}, s.handleGetPalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePalette",
		Method:      http.MethodDelete,
		Path:        "/api/v1/palettes/{id}",
		Summary:     "Delete saved palette",
		Tags:        []string{"Saved Palettes"},
		Security:    bearer,
	}, s.handleDeletePalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportPalette",
		Method:      http.MethodGet,
		Path:        "/api/v1/palettes/{id}/export",
		Summary:     "Export palette",
		Description: "Downloads a saved palette as JSON, CSS custom properties or a TOML theme",
		Tags:        []string{"Saved Palettes"},
		Security:    bearer,
	}, s.handleExportPalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "paletteSwatch",
		Method:      http.MethodGet,
		Path:        "/api/v1/palettes/{id}/swatch.png",
		Summary:     "Palette swatch image",
		Description: "Returns a labelled PNG strip of the palette. Supports If-None-Match.",
		Tags:        []string{"Saved Palettes"},
		Security:    bearer,
	}, s.handlePaletteSwatch)
}

// === DTOs ===

// PaletteResponse is a saved palette in API responses.
type PaletteResponse struct {
	ID        string         `json:"id" doc:"Palette ID"`
	Name      string         `json:"name" doc:"Palette name"`
	Mode      string         `json:"mode" doc:"Mode the palette was generated with, if known"`
	Colors    []string       `json:"colors" doc:"Colours as #rrggbb"`
	Swatches  []color.Swatch `json:"swatches" doc:"Readable text colour and contrast grade per colour"`
	CreatedAt time.Time      `json:"created_at" doc:"When the palette was saved"`
}

// PaletteOutput wraps a palette for Huma.
type PaletteOutput struct {
	Body PaletteResponse
}

// PaletteListResponse is the caller's library.
type PaletteListResponse struct {
	Palettes []PaletteResponse `json:"palettes" doc:"Saved palettes, newest first"`
	Total    int               `json:"total" doc:"Number of saved palettes"`
}

// PaletteListOutput wraps the library for Huma.
type PaletteListOutput struct {
	Body PaletteListResponse
}

// SavePaletteRequest is the request body for saving a palette.
type SavePaletteRequest struct {
	Name   string   `json:"name,omitempty" required:"false" doc:"Palette name; a random one is chosen when blank"`
	Mode   string   `json:"mode,omitempty" required:"false" doc:"Mode the palette was generated with"`
	Colors []string `json:"colors" required:"false" doc:"Colours as 6-digit hex"`
}

// SavePaletteInput wraps the save request for Huma.
type SavePaletteInput struct {
	Body SavePaletteRequest
}

// PaletteIDInput identifies one palette.
type PaletteIDInput struct {
	ID string `path:"id" doc:"Palette ID"`
}

// SearchPalettesInput contains search query parameters.
type SearchPalettesInput struct {
	Query  string `query:"q" doc:"Words, a hex colour or a mode name"`
	Mode   string `query:"mode" doc:"Only palettes of this mode"`
	Limit  int    `query:"limit" minimum:"0" doc:"Page size (default 20, max 100)"`
	Offset int    `query:"offset" minimum:"0" doc:"Results to skip"`
}

// SearchPalettesOutput wraps search results for Huma.
type SearchPalettesOutput struct {
	Body *search.SearchResult
}

// ExportInput selects a palette and export format.
type ExportInput struct {
	ID     string `path:"id" doc:"Palette ID"`
	Format string `query:"format" default:"json" doc:"json, css or toml"`
}

// ExportOutput is a raw file download.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// SwatchInput identifies the palette and the client's cached ETag.
type SwatchInput struct {
	ID          string `path:"id" doc:"Palette ID"`
	IfNoneMatch string `header:"If-None-Match"`
}

// SwatchOutput is a PNG image.
type SwatchOutput struct {
	Status       int
	ContentType  string `header:"Content-Type"`
	ETag         string `header:"ETag"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// === Handlers ===

func (s *Server) handleListPalettes(ctx context.Context, _ *struct{}) (*PaletteListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	palettes, err := s.services.Palette.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]PaletteResponse, len(palettes))
	for i, p := range palettes {
		out[i] = mapPalette(p)
	}

	return &PaletteListOutput{Body: PaletteListResponse{Palettes: out, Total: len(out)}}, nil
}

func (s *Server) handleSavePalette(ctx context.Context, input *SavePaletteInput) (*PaletteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	palette, err := s.services.Palette.Save(ctx, userID, service.SaveRequest{
		Name:   input.Body.Name,
		Mode:   input.Body.Mode,
		Colors: input.Body.Colors,
	})
	if err != nil {
		return nil, err
	}

	return &PaletteOutput{Body: mapPalette(palette)}, nil
}

func (s *Server) handleSearchPalettes(ctx context.Context, input *SearchPalettesInput) (*SearchPalettesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Palette.Search(ctx, userID, service.SearchRequest{
		Query:  input.Query,
		Mode:   input.Mode,
		Limit:  min(input.Limit, MaxSearchLimit),
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &SearchPalettesOutput{Body: result}, nil
}

func (s *Server) handleGetPalette(ctx context.Context, input *PaletteIDInput) (*PaletteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	palette, err := s.services.Palette.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &PaletteOutput{Body: mapPalette(palette)}, nil
}

func (s *Server) handleDeletePalette(ctx context.Context, input *PaletteIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Palette.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Palette deleted"}}, nil
}

func (s *Server) handleExportPalette(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Palette.Export(ctx, userID, input.ID, input.Format)
	if err != nil {
		return nil, err
	}

	return &ExportOutput{
		ContentType:        result.ContentType,
		ContentDisposition: mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}),
		Body:               result.Data,
	}, nil
}

func (s *Server) handlePaletteSwatch(ctx context.Context, input *SwatchInput) (*SwatchOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Palette.SwatchPNG(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	etag := `"` + result.ETag + `"`
	out := &SwatchOutput{
		Status:       http.StatusOK,
		ContentType:  "image/png",
		ETag:         etag,
		CacheControl: CacheOneDayPrivate,
	}
	if etagMatches(input.IfNoneMatch, etag) {
		out.Status = http.StatusNotModified
		return out, nil
	}
	out.Body = result.Data
	return out, nil
}

// etagMatches implements the If-None-Match comparison, including "*" and lists.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func mapPalette(p *domain.SavedPalette) PaletteResponse {
	return PaletteResponse{
		ID:        p.ID,
		Name:      p.Name,
		Mode:      p.Mode,
		Colors:    p.Colors,
		Swatches:  p.Swatches(),
		CreatedAt: p.CreatedAt,
	}
}
