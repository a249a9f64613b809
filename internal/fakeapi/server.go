package fakeapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bobmcallan/buildup/internal/common"
)

// Server wraps the HTTP server around an API.
type Server struct {
	api    *API
	server *http.Server
	logger *common.Logger
}

// NewServer creates a stub server listening on host:port.
func NewServer(api *API, host string, port int, logger *common.Logger) *Server {
	return &Server{
		api:    api,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      api.Handler(),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting planning API stub")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
