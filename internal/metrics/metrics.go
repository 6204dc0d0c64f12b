package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Webhook metrics
	VerificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_webhook_verifications_total",
			Help: "Webhook verification attempts",
		},
		[]string{"result"}, // "verified" or "rejected"
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_processed_total",
			Help: "Inbound messaging events by disposition",
		},
		[]string{"disposition"}, // "dispatched" or "skipped"
	)

	// Fan-out metrics
	RepliesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_replies_generated_total",
			Help: "Reply generation outcomes",
		},
		[]string{"outcome"}, // "generated" or "fallback"
	)

	Deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_deliveries_total",
			Help: "Outbound Messenger deliveries",
		},
		[]string{"target", "outcome"}, // target: "sender", "supervisor", "advisor"
	)

	GeneratorLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relay_generator_latency_seconds",
			Help:    "Reply generation latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20},
		},
	)
)
