package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fftcli/internal/config"
)

type fakeHubStats struct{}

func (fakeHubStats) Metrics() map[string]interface{} {
	return map[string]interface{}{"active_connections": 0}
}

func TestHealthHandler_Healthy(t *testing.T) {
	paths := &config.Paths{
		ExtractsDir: t.TempDir(),
		ReportsDir:  t.TempDir(),
	}
	h := NewHealthHandler(paths, fakeHubStats{}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "v1.0.0", body["version"])
	assert.NotNil(t, body["websocket"])
}

func TestHealthHandler_DegradedWhenDirMissing(t *testing.T) {
	paths := &config.Paths{
		ExtractsDir: "/nonexistent/extracts",
		ReportsDir:  t.TempDir(),
	}
	h := NewHealthHandler(paths, nil, "v1.0.0")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])

	dirs := body["directories"].(map[string]interface{})
	assert.Equal(t, false, dirs["extracts"])
	assert.Equal(t, true, dirs["reports"])
}
