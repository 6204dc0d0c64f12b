package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Armaqdev/chatbot-messenger/internal/dispatch"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	dispatcher  *dispatch.Dispatcher
	verifyToken string
	logger      zerolog.Logger
	started     time.Time
}

// NewHandler creates a new Handler with the given dispatcher and webhook
// verification secret.
func NewHandler(dispatcher *dispatch.Dispatcher, verifyToken string, logger zerolog.Logger) *Handler {
	return &Handler{
		dispatcher:  dispatcher,
		verifyToken: verifyToken,
		logger:      logger,
		started:     time.Now(),
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
