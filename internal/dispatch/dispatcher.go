package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Armaqdev/chatbot-messenger/internal/generator"
	"github.com/Armaqdev/chatbot-messenger/internal/metrics"
	"github.com/Armaqdev/chatbot-messenger/internal/models"
)

// FallbackReply is delivered to the sender when reply generation fails.
const FallbackReply = "En este momento no puedo responder. Un asesor humano dará seguimiento en breve."

// Sender delivers text to a Messenger recipient. Implemented by
// *messenger.Client.
type Sender interface {
	SendText(ctx context.Context, recipientID, text string) (*models.SendResponse, error)
}

// Dispatcher runs the reply/notify/assign sequence for each inbound message
// of a webhook delivery. Every step is independently guarded: a failing
// delivery is logged and the remaining steps still run.
type Dispatcher struct {
	gen        generator.Generator
	sender     Sender
	rotator    *Rotator
	notifyPSID string
	logger     zerolog.Logger
}

// NewDispatcher creates a Dispatcher. notifyPSID may be empty, which
// disables supervisor notification; gen may be nil, which makes every
// reply use the fallback text.
func NewDispatcher(gen generator.Generator, sender Sender, rotator *Rotator, notifyPSID string, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		gen:        gen,
		sender:     sender,
		rotator:    rotator,
		notifyPSID: notifyPSID,
		logger:     logger,
	}
}

// Process handles every messaging event of one webhook payload, in payload
// order. It is safe to call from a detached goroutine: nothing escapes it,
// including panics from downstream collaborators.
func (d *Dispatcher) Process(ctx context.Context, payload models.WebhookPayload) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Msg("dispatch panicked")
		}
	}()

	dispatchID := uuid.New().String()
	logger := d.logger.With().Str("dispatch_id", dispatchID).Logger()

	for _, entry := range payload.Entry {
		for _, event := range entry.Messaging {
			if event.Message == nil || event.Message.IsEcho {
				metrics.EventsProcessed.WithLabelValues("skipped").Inc()
				continue
			}
			text := strings.TrimSpace(event.Message.Text)
			if text == "" {
				metrics.EventsProcessed.WithLabelValues("skipped").Inc()
				continue
			}

			metrics.EventsProcessed.WithLabelValues("dispatched").Inc()
			d.handleEvent(ctx, logger, event.Sender.ID, event.Message.Text)
		}
	}
}

// handleEvent runs the four fan-out steps for one message. Steps are
// sequential; failures are logged and never propagate to the next step.
func (d *Dispatcher) handleEvent(ctx context.Context, logger zerolog.Logger, senderID, text string) {
	logger = logger.With().Str("sender", senderID).Logger()

	// Step a: generate the reply, degrading to the fixed fallback.
	reply := d.generateReply(ctx, logger, text)

	// Step b: deliver the reply (or fallback) to the sender.
	d.deliver(ctx, logger, "sender", senderID, reply)

	// Step c: notify the supervisor, if one is configured.
	if d.notifyPSID != "" {
		notification := fmt.Sprintf("Chatbot Messenger:\nCliente PSID: %s\nMensaje: %s", senderID, text)
		d.deliver(ctx, logger, "supervisor", d.notifyPSID, notification)
	}

	// Step d: assign the next advisor in rotation.
	if advisor, ok := d.rotator.Next(); ok {
		assignment := fmt.Sprintf("Asignación Chatbot Messenger:\nCliente PSID: %s\nMensaje: %s", senderID, text)
		d.deliver(ctx, logger, "advisor", advisor, assignment)
	}
}

// generateReply calls the generator and falls back to the fixed text on any
// failure. It never returns an empty string.
func (d *Dispatcher) generateReply(ctx context.Context, logger zerolog.Logger, text string) string {
	if d.gen == nil {
		metrics.RepliesGenerated.WithLabelValues("fallback").Inc()
		return FallbackReply
	}

	reply, err := d.gen.Generate(ctx, text)
	if err != nil {
		logger.Error().Err(err).Msg("reply generation failed, using fallback")
		metrics.RepliesGenerated.WithLabelValues("fallback").Inc()
		return FallbackReply
	}

	metrics.RepliesGenerated.WithLabelValues("generated").Inc()
	return reply
}

// deliver performs one best-effort send. Failures are logged only; there is
// no caller left to receive them once the webhook has been acknowledged.
func (d *Dispatcher) deliver(ctx context.Context, logger zerolog.Logger, target, recipientID, text string) {
	if _, err := d.sender.SendText(ctx, recipientID, text); err != nil {
		logger.Error().
			Err(err).
			Str("target", target).
			Str("recipient", recipientID).
			Msg("delivery failed")
		metrics.Deliveries.WithLabelValues(target, "error").Inc()
		return
	}
	metrics.Deliveries.WithLabelValues(target, "ok").Inc()
}
