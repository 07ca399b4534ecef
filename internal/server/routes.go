// Package server provides the HTTP server implementation for the LocaleWatch
// application. Routes are grouped by functionality (settings, capabilities,
// teams) with protection handled through middleware for authenticated
// endpoints.
package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/middleware"
	"github.com/localewatch/localewatch/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check and version endpoints (unprotected)
// - Settings document endpoints (read, dotted-path read, guarded update)
// - Capability-check endpoints
// - Team-assignment management (requires the manage-teams capability)
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(corsMiddleware(s.Config.CORS.AllowedOrigins))
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.PingContext(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
				return
			}

			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})
	})

	// API routes (all protected)
	r.Route(constants.APIBasePath, func(r chi.Router) {
		r.Use(middleware.JWTAuth(s.jwtService))

		// Settings document routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.Handlers.SettingsHandler.GetSettings)
			r.Get("/value", s.Handlers.SettingsHandler.GetSetting)
			r.Get("/nonce", s.Handlers.SettingsHandler.GetUpdateNonce)
			r.Put("/", s.Handlers.SettingsHandler.UpdateSettings)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(constants.CapManageSettings))
				r.Delete("/cache", s.Handlers.SettingsHandler.ClearSettingsCache)
			})
		})

		// Capability resolution routes
		r.Route("/capabilities", func(r chi.Router) {
			r.Post("/check", s.Handlers.CapabilityHandler.CheckCapability)
			r.Get("/base", s.Handlers.CapabilityHandler.GetBaseCapabilities)
		})

		// Team-assignment routes
		r.Route("/teams", func(r chi.Router) {
			r.Get("/locale-managers", s.Handlers.TeamHandler.ListLocaleManagers)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(constants.CapManageTeams))
				r.Post("/assignments", s.Handlers.TeamHandler.AddAssignment)
				r.Delete("/assignments", s.Handlers.TeamHandler.RemoveAssignment)
			})
		})
	})

	s.router = r
}

// corsMiddleware applies CORS headers for the configured origins.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(origin, allowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
					constants.HeaderContentType,
					constants.HeaderAuthorization,
					constants.HeaderXNonce,
				}, ", "))
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed tests an origin against the configured allow list.
func originAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}
