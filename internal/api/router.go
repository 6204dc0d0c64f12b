package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Armaqdev/chatbot-messenger/internal/api/middleware"
	"github.com/Armaqdev/chatbot-messenger/internal/handlers"
)

// NewRouter creates and configures the HTTP router. appSecret enables
// webhook payload signature checking when non-empty.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, appSecret string) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(64 * 1024)) // 64KB max webhook body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS for the GET endpoints; POST /webhook is server-to-server.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Hub-Signature-256"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)

	r.Get("/webhook", h.VerifyWebhook)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Signature(appSecret, logger))
		r.Post("/webhook", h.ReceiveWebhook)
	})

	return r
}
