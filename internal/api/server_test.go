package api

import (
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromafy/chromafy-server/internal/auth"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/media/swatch"
	"github.com/chromafy/chromafy-server/internal/search"
	"github.com/chromafy/chromafy-server/internal/service"
	"github.com/chromafy/chromafy-server/internal/store/badgerdb"
)

// testEnvelope is the success envelope with typed data.
type testEnvelope[T any] struct {
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// testErrorEnvelope is the error envelope.
type testErrorEnvelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details"`
}

// testServer wraps the API server for testing.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Name: "Chromafy Test"},
		Auth: config.AuthConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 30 * 24 * time.Hour,
		},
		Palette: config.PaletteConfig{
			SavedLimit:   12,
			DefaultBase:  "#7c3aed",
			DefaultMode:  "Random",
			DefaultCount: 5,
			MaxCount:     64,
		},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 100, AuthBurst: 50},
	}
}

// setupTestServer creates a test server over a temp-dir badger store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithConfig(t, testConfig())
}

func setupTestServerWithConfig(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := badgerdb.Open(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{DataPath: filepath.Join(tmpDir, "search")})
	require.NoError(t, err)

	swatches, err := swatch.NewCache(tmpDir)
	require.NoError(t, err)

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	cfg.Auth.AccessTokenKey = authKey

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	sessionService := service.NewSessionService(st, tokenService, logger)
	services := &Services{
		Auth:    service.NewAuthService(st, tokenService, sessionService, logger),
		Palette: service.NewPaletteService(st, index, swatches, cfg.Palette, logger),
	}

	s := NewServer(st, services, cfg, logger)

	t.Cleanup(func() {
		_ = s.Shutdown()
		_ = index.Close()
		_ = st.Close()
	})

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		tokenService: tokenService,
	}
}

// signup creates an account and returns its auth response.
func (ts *testServer) signup(t *testing.T, name, email string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "signup failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

func decodeError(t *testing.T, body []byte) testErrorEnvelope {
	t.Helper()
	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, 1, envelope.Version)
	return envelope
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeError(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/modes", nil)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, w.Body.Bytes()).Code)
}

func TestServer_CORS(t *testing.T) {
	cfg := testConfig()
	cfg.Server.CORSOrigins = []string{"https://app.example.com"}
	ts := setupTestServerWithConfig(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/modes", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/modes", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_OpenAPI(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/palettes/{id}/export")
}
