// Package server provides the HTTP server implementation for the LocaleWatch
// application. It handles routing, middleware configuration, and server
// lifecycle management.
//
// The server follows a structured initialization approach with dependency
// injection and proper lifecycle management: database, auth providers,
// repositories, domain services, handlers, routes. It handles graceful
// shutdown with appropriate error handling and recovery mechanisms.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/capability"
	"github.com/localewatch/localewatch/internal/config"
	"github.com/localewatch/localewatch/internal/database"
	"github.com/localewatch/localewatch/internal/handlers"
	"github.com/localewatch/localewatch/internal/repository"
	"github.com/localewatch/localewatch/internal/settings"
	"github.com/localewatch/localewatch/internal/utils/ratelimit"
	"github.com/localewatch/localewatch/migrations"
)

// Handlers contains all HTTP handlers for the application.
// It centralizes handler management for consistent request processing
// and simplifies dependency injection throughout the application.
type Handlers struct {
	// SettingsHandler manages the settings document endpoints
	SettingsHandler *handlers.SettingsHandler

	// CapabilityHandler manages permission-check endpoints
	CapabilityHandler *handlers.CapabilityHandler

	// TeamHandler manages team-assignment endpoints
	TeamHandler *handlers.TeamHandler
}

// Server represents the API server for the LocaleWatch application.
// It encapsulates all server components and handles server lifecycle,
// including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// jwtService handles JWT token generation and validation
	jwtService *auth.JWTService

	// nonceService issues and verifies anti-forgery tokens
	nonceService *auth.NonceService

	// engine is the settings engine shared by handlers
	engine *settings.Engine

	// rateLimits tracks per-actor update budgets
	rateLimits *ratelimit.Store

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration including database, server, and auth settings
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	s.setupAuthProviders()
	s.setupDomain()
	s.SetupRoutes()

	return s, nil
}

// setupDatabase connects the pool and applies the schema migrations.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}
	s.Db = db

	if err := migrations.Run(context.Background(), db); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// setupAuthProviders initializes the JWT and anti-forgery services.
func (s *Server) setupAuthProviders() {
	s.jwtService = auth.NewJWTService(&s.Config.JWT)
	s.nonceService = auth.NewNonceService(&s.Config.Security)
}

// setupDomain wires the repositories, the settings engine and the
// capability resolver, and registers the handlers over them.
func (s *Server) setupDomain() {
	options := repository.NewOptionRepository(s.Db)
	teams := repository.NewTeamRepository(s.Db)

	s.rateLimits = ratelimit.NewStore(
		s.Config.RateLimit.UpdateLimit,
		s.Config.RateLimit.UpdateWindow,
		s.Config.RateLimit.UpdateWindow,
	)
	s.engine = settings.NewEngine(options, s.nonceService, s.rateLimits)

	resolver := capability.NewResolver(teams)

	s.Handlers = &Handlers{
		SettingsHandler:   handlers.NewSettingsHandler(s.engine, s.nonceService),
		CapabilityHandler: handlers.NewCapabilityHandler(resolver),
		TeamHandler:       handlers.NewTeamHandler(teams),
	}
}

// Start runs the HTTP server until an error occurs or a shutdown signal is
// received, then shuts down gracefully.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.Config.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("address", s.httpServer.Addr).
			Str("environment", s.Config.App.Environment).
			Msg("Starting HTTP server")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		return s.Shutdown()
	}
}

// Shutdown stops the server gracefully, draining in-flight requests and
// releasing resources.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
	}

	if s.rateLimits != nil {
		s.rateLimits.Stop()
	}
	if s.Db != nil {
		s.Db.Close()
	}

	log.Info().Msg("Server stopped")
	return nil
}

// Router returns the configured router, used by tests to drive the full
// middleware and handler chain without a listening socket.
func (s *Server) Router() chi.Router {
	return s.router
}
