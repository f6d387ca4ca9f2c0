// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The same composition serves both operating modes: in guest mode the
handlers carry stub services, the token verifier is nil (every request
is anonymous), and the route table is unchanged.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/av3hub/avhub/internal/hub/program"
	"github.com/av3hub/avhub/internal/hub/script"
	"github.com/av3hub/avhub/internal/hub/social"
	"github.com/av3hub/avhub/internal/platform/config"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/middleware"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/internal/users/account"
	"github.com/av3hub/avhub/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup, login, logout, and password recovery.
	Auth *auth.Handler

	// Identity serves the current-session profile and dashboard tab set.
	Identity *IdentityHandler

	// Account handles profile and settings routes.
	Account *account.Handler

	// Script handles the community script catalog.
	Script *script.Handler

	// Program handles the owner-curated program catalog.
	Program *program.Handler

	// Social handles comments and likes on scripts and programs.
	Social *social.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(group chi.Router) {
			h.Auth.RegisterRoutes(group)
			h.Identity.RegisterAuthRoutes(group, middleware.RequireAuth)
		})
		api.Route("/dashboard", func(group chi.Router) {
			h.Identity.RegisterDashboardRoutes(group)
		})
		api.Route("/account", func(group chi.Router) {
			h.Account.RegisterRoutes(group, middleware.RequireAuth)
		})
		api.Route("/scripts", func(group chi.Router) {
			h.Script.RegisterRoutes(group, middleware.RequireAuth)
		})
		api.Route("/programs", func(group chi.Router) {
			h.Program.RegisterRoutes(group, middleware.RequireRole(sec.RoleOwner))
		})
		h.Social.RegisterRoutes(api, middleware.RequireAuth)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
