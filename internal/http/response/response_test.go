package response

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/chromafy/chromafy-server/internal/errors"
	"github.com/chromafy/chromafy-server/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"mode": "Triadic"}, discard())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, float64(1), body["v"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"mode": "Triadic"}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestJSON_NullDataIsPresent(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, nil, nil)

	body := decode(t, w)
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, map[string]string{"id": "pal-1"}, discard())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, "VALIDATION", "bad input", discard())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "bad input", body["error"])
	assert.Equal(t, "VALIDATION", body["code"])
	assert.NotContains(t, body, "details")
	assert.NotContains(t, body, "data")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, "Route not found", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])

	w = httptest.NewRecorder()
	MethodNotAllowed(w, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, w)["code"])
}

func TestTooManyRequests(t *testing.T) {
	tests := []struct {
		wait time.Duration
		want string
	}{
		{3 * time.Second, "3"},
		{200 * time.Millisecond, "1"},
		{0, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.wait.String(), func(t *testing.T) {
			w := httptest.NewRecorder()
			TooManyRequests(w, tt.wait, nil)

			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Retry-After"))
			body := decode(t, w)
			assert.Equal(t, "LIMIT_EXCEEDED", body["code"])
		})
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "domain not found",
			err:        domainerrors.NotFound("Palette not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Palette not found",
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("signup: %w", domainerrors.AlreadyExists(domainerrors.MsgUserExists)),
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
			wantMsg:    "User already exists",
		},
		{
			name:       "invalid credentials",
			err:        domainerrors.InvalidCredentials(domainerrors.MsgInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "store not found",
			err:        store.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "resource not found",
		},
		{
			name:       "unknown",
			err:        io.ErrUnexpectedEOF,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, discard())

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestHandleError_Details(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.ValidationWithDetails("validation failed", map[string]string{"email": "must be a valid email"}), nil)

	body := decode(t, w)
	assert.Equal(t, map[string]any{"email": "must be a valid email"}, body["details"])
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "VALIDATION", StatusCode(http.StatusUnprocessableEntity))
	assert.Equal(t, "ALREADY_EXISTS", StatusCode(http.StatusConflict))
	assert.Equal(t, "INTERNAL", StatusCode(http.StatusBadGateway))
	assert.Equal(t, "ERROR", StatusCode(http.StatusTeapot))
}
