package handlers

import (
	"net/http"
	"time"

	"github.com/marmos91/bridgefs/pkg/provider"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	mounts *provider.Mounts
}

// NewHealthHandler creates the handler.
func NewHealthHandler(mounts *provider.Mounts) *HealthHandler {
	return &HealthHandler{mounts: mounts}
}

// healthResponse is the liveness payload.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Mounts    int       `json:"mounts"`
}

// Liveness handles GET /health. The process is alive as long as it can
// answer; the mount count is included for quick inspection.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Mounts:    len(h.mounts.Schemes()),
	})
}
