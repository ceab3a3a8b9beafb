package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// Health status constants for health check responses.
const (
	healthStatusOK       = "ok"
	healthStatusNotReady = "not ready"
	healthStatusDisabled = "credentials disabled"
)

// SyncStatus is what the health checker needs to know about the syncer.
type SyncStatus interface {
	// Disabled reports whether scheduled runs are suspended after an
	// authentication failure.
	Disabled() bool
}

// HealthChecker provides health check endpoints for the daemon.
type HealthChecker struct {
	status    SyncStatus
	startTime time.Time
}

// NewHealthChecker creates a HealthChecker observing the given syncer.
func NewHealthChecker(status SyncStatus) *HealthChecker {
	return &HealthChecker{status: status, startTime: time.Now()}
}

// HealthResponse represents the JSON response for health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler returns an HTTP handler for the /healthz endpoint.
// Liveness is a simple check that the process is running.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: healthStatusOK,
			Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
		})
	})
}

// ReadinessHandler returns an HTTP handler for the /readyz endpoint.
// The daemon reports not ready while scheduled runs are suspended pending
// credential re-verification.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		checks := make(map[string]string)
		allOk := true

		if h.status != nil && h.status.Disabled() {
			checks["credentials"] = healthStatusDisabled
			allOk = false
		} else {
			checks["credentials"] = healthStatusOK
		}

		response := HealthResponse{Checks: checks}
		if allOk {
			response.Status = healthStatusOK
			w.WriteHeader(http.StatusOK)
		} else {
			response.Status = healthStatusNotReady
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(response)
	})
}

// RegisterHealthEndpoints registers health check endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
}
