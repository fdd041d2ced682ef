package api

import "github.com/chromafy/chromafy-server/internal/service"

// Services groups the business logic used by the API server.
type Services struct {
	Auth    *service.AuthService
	Palette *service.PaletteService
}
