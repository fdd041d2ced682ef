// Package api provides the HTTP API server and handlers for Chromafy.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/http/response"
	"github.com/chromafy/chromafy-server/internal/ratelimit"
	"github.com/chromafy/chromafy-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := chi.NewRouter()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		logger:   logger,
		authRateLimiter: ratelimit.PerMinute(
			cfg.RateLimit.AuthPerMinute,
			cfg.RateLimit.AuthBurst,
		),
	}

	s.setupMiddleware(cfg.Server.CORSOrigins)

	name := cfg.Server.Name
	if name == "" {
		name = "Chromafy"
	}
	s.api = humachi.New(router, newHumaConfig(name+" API", "1.0.0"))
	RegisterErrorHandler()

	s.registerRoutes()

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found", s.logger)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})

	return s
}

func newHumaConfig(title, version string) huma.Config {
	humaConfig := huma.DefaultConfig(title, version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	return humaConfig
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Shutdown stops background work owned by the server.
func (s *Server) Shutdown() error {
	s.authRateLimiter.Stop()
	return nil
}

// setupMiddleware configures the middleware stack. Order matters: the auth
// middleware must run before huma handlers read the user from context.
func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"Content-Disposition", "ETag", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitMiddleware(s.authRateLimiter, s.logger, isRateLimitedAuthRoute))
	s.router.Use(authMiddleware(s.services.Auth))
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerColorRoutes()
	s.registerAuthRoutes()
	s.registerPaletteRoutes()
}
