// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package web wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/server are allowed to import net/http server primitives.

The middleware chain is built once, parameterized by the active session store;
there is deliberately no second bootstrap variant per backend.
*/
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ngocmai/camellia/internal/catalog"
	"github.com/ngocmai/camellia/internal/orders"
	"github.com/ngocmai/camellia/internal/platform/config"
	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
	"github.com/ngocmai/camellia/internal/platform/middleware"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/session"
	"github.com/ngocmai/camellia/internal/upload"
	"github.com/ngocmai/camellia/internal/users"
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
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. It always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the login, signup, and logout pages.
	Auth *users.Handler

	// Shop handles the public product pages.
	Shop *catalog.ShopHandler

	// Admin handles the authenticated product-management pages.
	Admin *catalog.AdminHandler

	// Orders handles the cart and order-history pages.
	Orders *orders.Handler
}

// # Dependencies

// Dependencies carries the non-handler collaborators the chain needs.
type Dependencies struct {
	// SessionConfig carries the active session backend plus the cookie policy.
	// Built once in main and shared with the auth handler, which needs the
	// same signing secret to rotate sessions at login.
	SessionConfig session.Config

	// UserRepository hydrates the current-user identity from sessions.
	UserRepository users.Repository

	// Renderer renders pages, including the 404/500 fallbacks.
	Renderer *render.Renderer
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// The renderer needs request-scoped view data (auth state, CSRF token,
	// flashes), but it must not import domain packages. Install the bridge here.
	deps.Renderer.SetDecorator(decoratePage)

	// # Middleware Chain
	// Global middleware applied in order of execution. Ordering is load-bearing:
	// the upload parser must run before CSRF verification so that form values
	// inside multipart bodies are readable, and session resolution must precede
	// both the current-user and CSRF stages.
	r.Use(chimw.Compress(5))
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log, deps.Renderer))
	r.Use(chimw.CleanPath)
	r.Use(upload.Parser(cfg.UploadDir))
	r.Use(session.Resolve(deps.SessionConfig))
	r.Use(users.CurrentUser(deps.UserRepository, deps.Renderer))
	r.Use(session.VerifyCSRF(deps.Renderer))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Static Files
	// Uploaded product images are served straight from the upload directory.
	r.Handle("/images/*", uploadedImages(cfg.UploadDir, deps.Renderer))

	// # Application Pages
	// Public pages register at the top level; the cart, order, and admin pages
	// sit behind the authentication gate.
	h.Shop.Register(r)
	h.Auth.Register(r)

	r.Group(func(protected chi.Router) {
		protected.Use(users.RequireAuth)
		h.Orders.Register(protected)
		protected.Mount("/admin", h.Admin.Routes())
	})

	// # Development Aids
	// The session inspector leaks record internals (CSRF secret included) and
	// therefore never ships outside development.
	if cfg.IsDevelopment() {
		r.Get("/debug-session", debugSession)
	}

	// Unmatched routes get the rendered 404 page, not the stdlib plain text.
	r.NotFound(deps.Renderer.NotFound)

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

// uploadedImages serves files from the upload directory.
//
// Directory requests are refused with the rendered 404 page; a listing would
// enumerate every uploaded image.
func uploadedImages(dir string, renderer *render.Renderer) http.Handler {
	files := http.StripPrefix("/images/", http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasSuffix(request.URL.Path, "/") {
			renderer.NotFound(writer, request)
			return
		}
		files.ServeHTTP(writer, request)
	})
}

// decoratePage fills the ambient view model fields from the request context.
//
// It tolerates a missing session or identity: both occur on the early error
// path (panic recovery, session store outage), where the zero values render a
// correct anonymous page.
func decoratePage(request *http.Request, page *render.Page) {
	if identity := ctxutil.GetIdentity(request.Context()); identity != nil {
		page.IsAuthenticated = true
	}

	current := session.FromContext(request.Context())
	if current == nil {
		return
	}

	page.CSRFToken = session.CSRFToken(current)
	for _, flash := range current.PopFlashes() {
		page.Flashes = append(page.Flashes, render.Flash{Kind: flash.Kind, Message: flash.Message})
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

// Router exposes the composed router for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
