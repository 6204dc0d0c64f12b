package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the health check response. The shape is a compatibility
// contract with the deployment platform's probes.
type HealthResponse struct {
	OK     bool    `json:"ok"`
	Uptime float64 `json:"uptime"` // seconds since process start
}

// Health handles the health check endpoint. It always succeeds.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, HealthResponse{
		OK:     true,
		Uptime: time.Since(h.started).Seconds(),
	})
}
