// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agentmodes/agentmodes/internal/config"
	"github.com/agentmodes/agentmodes/internal/convert"
	"github.com/agentmodes/agentmodes/internal/storage"
)

// Server is the REST API server.
type Server struct {
	httpServer *http.Server
}

// New creates and wires up the API server. It does NOT start listening —
// call Run() for that.
func New(cfg *config.AppConfig, store *storage.Store) *Server {
	handlers := NewHandlers(store, convert.NewConverter(), cfg.Upload)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(cfg, handlers),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// NewRouter assembles the middleware chain and REST routes.
func NewRouter(cfg *config.AppConfig, handlers *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(CORS(cfg.Server.AllowedOrigins))
	r.Use(MaxBodySize(int64(cfg.Upload.MaxFileSizeMB) << 20))

	// REST routes
	r.Route("/api/v1", func(r chi.Router) {
		// Templates
		r.Get("/templates", handlers.GetTemplates)
		r.Post("/templates", handlers.CreateTemplate)
		r.Get("/templates/{id}", handlers.GetTemplate)
		r.Put("/templates/{id}", handlers.UpdateTemplate)
		r.Delete("/templates/{id}", handlers.DeleteTemplate)
		r.Get("/templates/{id}/card", handlers.GetTemplateCard)

		// Configurations
		r.Get("/configurations", handlers.GetConfigurations)
		r.Post("/configurations", handlers.CreateConfiguration)
		r.Get("/configurations/{id}", handlers.GetConfiguration)
		r.Put("/configurations/{id}", handlers.UpdateConfiguration)
		r.Delete("/configurations/{id}", handlers.DeleteConfiguration)
		r.Get("/configurations/{id}/card", handlers.GetConfigurationCard)

		// Custom agents
		r.Get("/custom-agents", handlers.GetCustomAgents)
		r.Post("/custom-agents", handlers.CreateCustomAgent)
		r.Get("/custom-agents/{id}", handlers.GetCustomAgent)
		r.Put("/custom-agents/{id}", handlers.UpdateCustomAgent)
		r.Delete("/custom-agents/{id}", handlers.DeleteCustomAgent)
		r.Get("/custom-agents/{id}/card", handlers.GetCustomAgentCard)

		// Teams
		r.Get("/teams", handlers.GetTeams)
		r.Post("/teams", handlers.CreateTeam)
		r.Get("/teams/{id}", handlers.GetTeam)
		r.Put("/teams/{id}", handlers.UpdateTeam)
		r.Delete("/teams/{id}", handlers.DeleteTeam)

		// Validation
		r.Post("/validate/agent", handlers.ValidateAgent)
		r.Post("/validate/team", handlers.ValidateTeam)

		// Conversion
		r.Get("/formats", handlers.GetFormats)
		r.Post("/convert", handlers.Convert)

		// Upload
		r.Post("/upload", handlers.Upload)
	})

	return r
}

// Run starts the HTTP server. Blocks until the server is shut down.
func (s *Server) Run(ctx context.Context) error {
	getLog().Info().Str("addr", s.httpServer.Addr).Msg("API server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
