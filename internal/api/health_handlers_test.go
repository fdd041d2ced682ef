package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
	assert.Equal(t, "healthy", envelope.Data.Components["search"].Status)
	assert.Equal(t, "0 palettes indexed", envelope.Data.Components["search"].Message)
}

func TestHealthCheck_NoServices(t *testing.T) {
	s := &Server{}

	assert.Equal(t, "degraded", s.checkDatabase(t.Context()).Status)
	assert.Equal(t, "degraded", s.checkSearchIndex().Status)
}

func TestFormatDocCount(t *testing.T) {
	assert.Equal(t, "1 palette indexed", formatDocCount(1))
	assert.Equal(t, "12,000 palettes indexed", formatDocCount(12000))
}
