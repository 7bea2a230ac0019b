package http

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/render"

	"fftcli/internal/config"
)

// HubStats exposes the websocket hub counters on the health endpoint.
type HubStats interface {
	Metrics() map[string]interface{}
}

// HealthHandler serves the service health endpoint.
type HealthHandler struct {
	paths     *config.Paths
	hub       HubStats
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(paths *config.Paths, hub HubStats, version string) *HealthHandler {
	return &HealthHandler{
		paths:     paths,
		hub:       hub,
		version:   version,
		startTime: time.Now(),
	}
}

// ServeHTTP reports liveness plus directory and hub state. A missing
// extracts directory degrades the status without failing the check.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	dirs := map[string]bool{}
	if h.paths != nil {
		for name, dir := range map[string]string{
			"extracts": h.paths.ExtractsDir,
			"reports":  h.paths.ReportsDir,
		} {
			_, err := os.Stat(dir)
			dirs[name] = err == nil
			if err != nil {
				status = "degraded"
			}
		}
	}

	body := map[string]interface{}{
		"status":      status,
		"version":     h.version,
		"uptime":      time.Since(h.startTime).String(),
		"directories": dirs,
	}
	if h.hub != nil {
		body["websocket"] = h.hub.Metrics()
	}

	render.JSON(w, r, body)
}
