package server

import (
	"encoding/json"
	"net/http"

	"github.com/desertthunder/tunely/internal/metrics"
)

// HealthHandler reports liveness as a small JSON document.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a [HealthHandler] reporting version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"GET /healthz"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": h.version})
}

// MetricsHandler exposes Prometheus metrics.
type MetricsHandler struct {
	http.Handler
}

// NewMetricsHandler creates a [MetricsHandler] over the default registry.
func NewMetricsHandler() *MetricsHandler {
	metrics.Init()
	return &MetricsHandler{Handler: metrics.Handler()}
}

// Routes returns the HTTP routes this handler serves.
func (h *MetricsHandler) Routes() []string {
	return []string{"GET /metrics"}
}
