// Package rest exposes the registry over HTTP/JSON: the auth endpoints that
// mint bearer tokens and the token-guarded artifact CRUD routes.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/logging"
	"github.com/dmitrijs2005/artkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type RestServer struct {
	address   string
	users     *services.UserService
	artifacts *services.ArtifactService
	logger    logging.Logger
	jwtSecret []byte
}

func NewRestServer(a string, l logging.Logger, us *services.UserService, as *services.ArtifactService, secretKey string) (*RestServer, error) {
	return &RestServer{
		address:   a,
		logger:    l.With("module", "rest_server"),
		users:     us,
		artifacts: as,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router assembles the chi router with the public auth routes and the
// bearer-token guarded artifact routes.
func (s *RestServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", s.handlePing)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	r.Route("/api/artifacts", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/", s.handleCreateArtifact)
		r.Get("/", s.handleListArtifacts)
		r.Put("/{id}", s.handleUpdateArtifact)
		r.Delete("/{id}", s.handleDeleteArtifact)
	})

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. On cancellation the server drains in-flight requests for up
// to shutdownTimeout.
func (s *RestServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
