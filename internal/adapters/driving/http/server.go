// Package http exposes the stored agency metrics and upstream reference
// data as a read-only JSON API. It performs no computation; it serves
// whatever the latest batch run persisted.
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	store driven.MetricsStore
	ecfr  driven.ECFRClient
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, store driven.MetricsStore, ecfrClient driven.ECFRClient) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		version: cfg.Version,
		store:   store,
		ecfr:    ecfrClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      requestLogger(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Stored metrics (result store reads)
	s.router.HandleFunc("GET /api/v1/agencies/{slug}/metrics", s.handleGetAgencyMetrics)
	s.router.HandleFunc("GET /api/v1/metrics", s.handleGetMetrics)

	// Upstream reference data passthroughs
	s.router.HandleFunc("GET /api/v1/agencies", s.handleListAgencies)
	s.router.HandleFunc("GET /api/v1/titles", s.handleListTitles)
	s.router.HandleFunc("GET /api/v1/titles/{number}/versions", s.handleGetTitleVersions)
	s.router.HandleFunc("GET /api/v1/corrections", s.handleListCorrections)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Handler returns the server's routing handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
