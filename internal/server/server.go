package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pagecraft/internal/config"
	"github.com/matzehuels/pagecraft/pkg/auth"
	"github.com/matzehuels/pagecraft/pkg/buildinfo"
	"github.com/matzehuels/pagecraft/pkg/export"
)

// Options configures a Server.
type Options struct {
	Auth     *auth.Service
	Exporter *export.Exporter
	Logger   *log.Logger

	// SecureCookies sets the Secure flag on the access token cookie. Only
	// plain-HTTP local development should turn it off.
	SecureCookies bool

	// Ping reports backend health for /healthz. Optional.
	Ping func(ctx context.Context) error
}

// Server is the HTTP API.
type Server struct {
	auth          *auth.Service
	exporter      *export.Exporter
	logger        *log.Logger
	secureCookies bool
	ping          func(ctx context.Context) error
	workspaces    *registry
	router        chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	s := &Server{
		auth:          opts.Auth,
		exporter:      opts.Exporter,
		logger:        opts.Logger,
		secureCookies: opts.SecureCookies,
		ping:          opts.Ping,
		workspaces:    newRegistry(),
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.exporter == nil {
		s.exporter = &export.Exporter{Logger: s.logger}
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.requireAuth).Get("/me", s.handleMe)
	})

	r.Route("/api/editor", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/document", s.handleDocument)
		r.Post("/elements", s.handleAddElement)
		r.Route("/elements/{id}", func(r chi.Router) {
			r.Patch("/", s.handlePatchElement)
			r.Delete("/", s.handleDeleteElement)
			r.Post("/forward", s.handleReorder(true))
			r.Post("/backward", s.handleReorder(false))
		})
		r.Post("/pointer/{phase}", s.handlePointer)
		r.Get("/export", s.handleExport)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down", "workspaces", s.workspaces.len())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			s.logger.Warn("health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}
