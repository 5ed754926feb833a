// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/churchwallet/internal/core/church"
	"github.com/taibuivan/churchwallet/internal/core/kudumbakutayima"
	"github.com/taibuivan/churchwallet/internal/core/member"
	"github.com/taibuivan/churchwallet/internal/core/unit"
	"github.com/taibuivan/churchwallet/internal/finance/campaign"
	"github.com/taibuivan/churchwallet/internal/finance/dues"
	"github.com/taibuivan/churchwallet/internal/finance/transaction"
	"github.com/taibuivan/churchwallet/internal/platform/config"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/middleware"
	"github.com/taibuivan/churchwallet/internal/users/account"
	"github.com/taibuivan/churchwallet/internal/users/auth"
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
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, refresh, logout and the current profile.
	Auth *auth.Handler

	// Account manages user accounts and role assignment.
	Account *account.Handler

	// Church, Unit, Kudumbakutayima and Member manage the parish hierarchy.
	Church          *church.Handler
	Unit            *unit.Handler
	Kudumbakutayima *kudumbakutayima.Handler
	Member          *member.Handler

	// Transaction, Campaign and Dues manage the ledger.
	Transaction *transaction.Handler
	Campaign    *campaign.Handler
	Dues        *dues.Handler
}

// Platform carries the cross-cutting collaborators of the middleware chain.
type Platform struct {
	Tokens     middleware.AccessVerifier
	Identities middleware.IdentityResolver
	Limiter    *middleware.RateLimiter
	Metrics    *metrics.Metrics
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, platform Platform, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(platform.Metrics.Instrument)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(platform.Limiter.Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.ObserveDenials(platform.Metrics.ObserveDenial))
	r.Use(middleware.Authenticate(platform.Tokens, platform.Identities))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", platform.Metrics.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/churches", churchTree(h))
		api.Mount("/units", unitTree(h))
		api.Mount("/kudumbakutayimas", kudumbakutayimaTree(h))
		api.Mount("/members", memberTree(h))
		api.Mount("/dues", h.Dues.Routes())
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

// # Route Trees

// churchTree nests the church-scoped resources under /churches/{churchId}.
func churchTree(h Handlers) chi.Router {
	router := h.Church.Routes()
	router.Mount("/{churchId}/units", h.Unit.ChurchRoutes())
	router.Mount("/{churchId}/users", h.Account.ChurchRoutes())
	router.Mount("/{churchId}/members", h.Member.ChurchRoutes())
	router.Mount("/{churchId}/transactions", h.Transaction.ChurchRoutes())
	router.Mount("/{churchId}/campaigns", h.Campaign.ChurchRoutes())
	router.Mount("/{churchId}/dues", h.Dues.ChurchRoutes())
	return router
}

func unitTree(h Handlers) chi.Router {
	router := h.Unit.Routes()
	router.Mount("/{unitId}/kudumbakutayimas", h.Kudumbakutayima.UnitRoutes())
	router.Mount("/{unitId}/members", h.Member.UnitRoutes())
	router.Mount("/{unitId}/transactions", h.Transaction.UnitRoutes())
	return router
}

func kudumbakutayimaTree(h Handlers) chi.Router {
	router := h.Kudumbakutayima.Routes()
	router.Mount("/{kudumbakutayimaId}/members", h.Member.KudumbakutayimaRoutes())
	return router
}

func memberTree(h Handlers) chi.Router {
	router := h.Member.Routes()
	router.Mount("/{memberId}/transactions", h.Transaction.MemberRoutes())
	router.Mount("/{memberId}/dues", h.Dues.MemberRoutes())
	return router
}

// # Server Lifecycle

// Handler exposes the root router (tests drive it with httptest).
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
