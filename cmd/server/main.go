package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Armaqdev/chatbot-messenger/internal/api"
	"github.com/Armaqdev/chatbot-messenger/internal/config"
	"github.com/Armaqdev/chatbot-messenger/internal/dispatch"
	"github.com/Armaqdev/chatbot-messenger/internal/generator"
	"github.com/Armaqdev/chatbot-messenger/internal/handlers"
	"github.com/Armaqdev/chatbot-messenger/internal/messenger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// Reply generator: absent credential means every reply degrades to the
	// fixed fallback text, but the relay keeps running.
	var gen generator.Generator
	if cfg.AnthropicAPIKey != "" {
		gen = generator.NewAnthropicGenerator(
			cfg.AnthropicAPIKey,
			cfg.GeneratorModel,
			cfg.GeneratorPrompt,
			cfg.GeneratorTimeout,
		)
	} else {
		logger.Warn().Msg("ANTHROPIC_API_KEY not set, replies will use fallback text")
	}

	// Delivery client; the page access token is checked per send, not here.
	client := messenger.NewClient(cfg.PageAccessToken)

	rotator := dispatch.NewRotator(cfg.AdvisorQueue)
	dispatcher := dispatch.NewDispatcher(gen, client, rotator, cfg.NotifyPSID, logger)

	h := handlers.NewHandler(dispatcher, cfg.VerifyToken, logger)
	router := api.NewRouter(logger, h, cfg.AppSecret)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Int("advisors", rotator.PoolSize()).
			Bool("supervisor", cfg.NotifyPSID != "").
			Msg("starting Messenger relay")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
