// Package http serves the prediction form and the JSON endpoints behind it.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"thyrocast/logger"
)

// Server wraps the single-user web server for the form.
type Server struct {
	server *http.Server
	config ServerConfig
}

// ServerConfig holds the server settings. The default host is loopback: the
// form is a local UI surface, not a public API.
type ServerConfig struct {
	Host           string
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:           "127.0.0.1",
		Port:           8080,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

func NewServer(config ServerConfig) *Server {
	mux := http.NewServeMux()

	RegisterHandlers(mux)
	RegisterDashboardRoutes(mux)
	RegisterWebSocketRoutes(mux)

	chain := Chain(
		RecoveryMiddleware,
		LoggerMiddleware,
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		TimeoutMiddleware(config.Timeout),
		RequestSizeMiddleware(1<<20),
	)

	handler := chain(mux)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			Handler:      handler,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
	}
}

func (s *Server) Start() error {
	logger.Infof("Starting HTTP server on %s", s.server.Addr)
	logger.Infof("Open http://%s/ for the prediction form", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Infof("Shutting down HTTP server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}
