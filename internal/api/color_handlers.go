package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/service"
)

func (s *Server) registerColorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listModes",
		Method:      http.MethodGet,
		Path:        "/api/v1/modes",
		Summary:     "List palette modes",
		Description: "Returns the supported generation modes in display order",
		Tags:        []string{"Palettes"},
	}, s.handleListModes)

	huma.Register(s.api, huma.Operation{
		OperationID: "generatePalette",
		Method:      http.MethodGet,
		Path:        "/api/v1/palettes/generate",
		Summary:     "Generate palette",
		Description: "Builds a palette around a base colour. Malformed colours are normalised, not rejected; unknown modes repeat the base colour.",
		Tags:        []string{"Palettes"},
	}, s.handleGeneratePalette)

	huma.Register(s.api, huma.Operation{
		OperationID: "contrast",
		Method:      http.MethodGet,
		Path:        "/api/v1/contrast",
		Summary:     "Contrast ratio",
		Description: "Computes the WCAG contrast ratio between two colours",
		Tags:        []string{"Palettes"},
	}, s.handleContrast)
}

// ModesResponse lists the generation modes and engine defaults.
type ModesResponse struct {
	Modes        []string `json:"modes" doc:"Supported modes in display order"`
	DefaultMode  string   `json:"default_mode" doc:"Mode used when none is given"`
	DefaultBase  string   `json:"default_base" doc:"Base colour used when none is given"`
	DefaultCount int      `json:"default_count" doc:"Colour count used when none is given"`
	MinCount     int      `json:"min_count" doc:"Smallest count offered by pickers"`
	MaxCount     int      `json:"max_count" doc:"Largest count offered by pickers"`
}

// ModesOutput wraps the modes response for Huma.
type ModesOutput struct {
	Body ModesResponse
}

func (s *Server) handleListModes(_ context.Context, _ *struct{}) (*ModesOutput, error) {
	modes := color.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}

	return &ModesOutput{
		Body: ModesResponse{
			Modes:        names,
			DefaultMode:  color.DefaultMode.String(),
			DefaultBase:  color.DefaultBase,
			DefaultCount: color.DefaultCount,
			MinCount:     color.MinPickerCount,
			MaxCount:     color.MaxPickerCount,
		},
	}, nil
}

// GenerateInput contains the generation query parameters.
type GenerateInput struct {
	Base  string `query:"base" doc:"Base colour, e.g. #7c3aed or 7c3aed"`
	Mode  string `query:"mode" doc:"Generation mode (case-insensitive)"`
	Count int    `query:"count" doc:"Number of colours; clamped to the server maximum"`
}

// GenerateOutput wraps the generated palette for Huma.
type GenerateOutput struct {
	Body *service.GeneratedPalette
}

func (s *Server) handleGeneratePalette(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	palette, err := s.services.Palette.Generate(ctx, service.GenerateRequest{
		Base:  input.Base,
		Mode:  input.Mode,
		Count: input.Count,
	})
	if err != nil {
		return nil, err
	}
	return &GenerateOutput{Body: palette}, nil
}

// ContrastInput contains the two colours to compare.
type ContrastInput struct {
	Foreground string `query:"fg" required:"true" doc:"Foreground (text) colour"`
	Background string `query:"bg" required:"true" doc:"Background colour"`
}

// ContrastOutput wraps the contrast result for Huma.
type ContrastOutput struct {
	Body *service.ContrastResult
}

func (s *Server) handleContrast(ctx context.Context, input *ContrastInput) (*ContrastOutput, error) {
	return &ContrastOutput{Body: s.services.Palette.Contrast(ctx, input.Foreground, input.Background)}, nil
}
