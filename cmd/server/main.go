package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/Tyrowin/moodsync/internal/assistant"
	"github.com/Tyrowin/moodsync/internal/auth"
	"github.com/Tyrowin/moodsync/internal/metrics"
	"github.com/Tyrowin/moodsync/internal/server"
	"github.com/Tyrowin/moodsync/internal/users"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := server.LoadConfig()
	logger := server.NewLogger(*cfg)

	if err := run(*cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server stopped")
}

func run(cfg server.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator := assistant.Generator(assistant.Disabled)
	if cfg.GeminiAPIKey != "" {
		gemini, err := assistant.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable; assistant endpoints will use fallbacks")
		} else {
			defer gemini.Close()
			generator = gemini
			logger.Info().Str("model", cfg.GeminiModel).Msg("Gemini client ready")
		}
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; assistant endpoints will use fallbacks")
	}

	svc := assistant.NewService(generator,
		assistant.WithTimeout(cfg.AITimeout),
		assistant.WithLogger(logger),
		assistant.WithObserver(func(endpoint string, outcome assistant.Outcome) {
			metrics.AssistantResponses.WithLabelValues(endpoint, string(outcome)).Inc()
		}),
	)

	hub := server.NewHub(cfg, logger)
	go hub.Run()

	api := server.NewServer(server.Deps{
		Hub:       hub,
		Users:     users.NewDirectory(users.NewBcryptHasher(bcrypt.DefaultCost)),
		Tokens:    auth.New(cfg.JWTSecret, 24*time.Hour),
		Assistant: svc,
		Logger:    logger,
	})
	httpServer := server.CreateServer(cfg.Sanitize(), api.Routes())

	logger.Info().
		Str("port", httpServer.Addr).
		Str("env", cfg.Env).
		Msg("starting MoodSync server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.StartServer(httpServer, logger)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")
		httpErr := server.ShutdownServer(httpServer, shutdownTimeout, logger)
		if err := hub.Shutdown(shutdownTimeout); err != nil {
			logger.Warn().Err(err).Msg("hub shutdown incomplete")
		}
		return httpErr
	})

	return g.Wait()
}
