package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Armaqdev/chatbot-messenger/internal/metrics"
	"github.com/Armaqdev/chatbot-messenger/internal/models"
)

// VerifyWebhook responds to Meta's webhook verification challenge:
// GET /webhook?hub.mode=subscribe&hub.verify_token=TOKEN&hub.challenge=CHALLENGE
// The challenge is echoed back only when the mode is "subscribe" and the
// token matches the configured secret exactly.
func (h *Handler) VerifyWebhook(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	// The configured secret itself is never logged; the match boolean is
	// enough for operational diagnosis.
	if mode == "subscribe" && token == h.verifyToken {
		h.logger.Info().Str("mode", mode).Msg("webhook verified")
		metrics.VerificationAttempts.WithLabelValues("verified").Inc()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	h.logger.Warn().
		Str("mode", mode).
		Bool("token_match", token == h.verifyToken).
		Msg("webhook verification failed")
	metrics.VerificationAttempts.WithLabelValues("rejected").Inc()
	w.WriteHeader(http.StatusForbidden)
}

// ReceiveWebhook accepts a Messenger event delivery. The platform enforces a
// short response SLA, so the request is acknowledged unconditionally and the
// fan-out runs in a detached goroutine. Malformed bodies degrade to "no
// events"; nothing observable to the platform can fail here.
func (h *Handler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	var payload models.WebhookPayload

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("webhook body read failed")
	} else if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warn().Err(err).Msg("webhook payload not parseable, ignoring")
		payload = models.WebhookPayload{}
	}

	w.WriteHeader(http.StatusOK)

	// The request context dies with the response; downstream sends get a
	// fresh one.
	go h.dispatcher.Process(context.Background(), payload)
}
