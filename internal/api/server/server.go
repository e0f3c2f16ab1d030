package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gallerium/marketplace-v2/internal/api/middleware"
	"github.com/gallerium/marketplace-v2/internal/api/rest"
	"github.com/gallerium/marketplace-v2/internal/logger"
)

// Config holds the HTTP server configuration
type Config struct {
	Host  string
	Port  int
	Debug bool
}

// Server wraps the HTTP server serving the marketplace API
type Server struct {
	httpServer *http.Server
}

// New creates an API server with routes and middleware wired up
func New(config Config, handler rest.Handler, validator middleware.TokenValidator) *Server {
	if config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	rest.SetupRoutes(router, handler, validator)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start begins serving requests. It blocks until the server stops.
func (s *Server) Start() error {
	logger.Info("starting API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, draining in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
