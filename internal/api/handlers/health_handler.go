package handlers

import (
	"net/http"

	"github.com/profilehub/backend/internal/api/types"
)

// Readiness reports whether backing services are up.
type Readiness interface {
	Ready() bool
}

type HealthHandler struct {
	ready Readiness
}

func NewHealthHandler(ready Readiness) *HealthHandler { return &HealthHandler{ready: ready} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

// Readiness is informational: traffic is served whether or not the
// database is up.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil && !h.ready.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, types.APIResponse{Success: false, Data: map[string]string{"status": "database unavailable"}})
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ready"}})
}
