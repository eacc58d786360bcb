// Package server wires HTTP handlers into a chi router for MoodSync.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tyrowin/moodsync/internal/assistant"
	"github.com/Tyrowin/moodsync/internal/middleware"
)

const maxBodyBytes = 64 * 1024

// Routes configures and returns the router with all application routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.log))
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.OptionalAuth(s.tokens, s.log))

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Get("/test", s.TestPageHandler)
	r.Get("/ws", s.WebSocketHandler)

	r.Post("/register", s.Register)
	r.Post("/login", s.Login)
	r.Get("/users", s.ListUsers)

	for _, ep := range assistant.Endpoints {
		r.Post(ep.Path, s.AssistantHandler(ep))
	}

	return r
}
