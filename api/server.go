// Package api exposes the rental search over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rental-comps/utils"
)

// Server is the HTTP front of the search.
type Server struct {
	httpServer *http.Server
	logger     *utils.Logger
}

// NewServer wires the router and returns a Server listening on port.
func NewServer(port string, handler *SearchHandler, allowedOrigins []string, logger *utils.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(handler, allowedOrigins, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter builds the chi router with logging, panic recovery and CORS.
func NewRouter(handler *SearchHandler, allowedOrigins []string, logger *utils.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", TraceHeader},
		ExposedHeaders: []string{TraceHeader},
		MaxAge:         300,
	}))

	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", handler.HandleSearch)
	})

	return r
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("[api] Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("[api] Stopping server")
	return s.httpServer.Shutdown(ctx)
}
