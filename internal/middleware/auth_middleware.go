// Package middleware provides the HTTP middleware chain: authentication,
// panic recovery and security headers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/utils"
)

// JWTValidator is the token verification surface the middleware needs.
// *auth.JWTService satisfies it; tests substitute a mock.
type JWTValidator interface {
	ValidateToken(tokenString string) (*auth.CustomClaims, error)
}

// JWTAuth requires a valid bearer token and stores the authenticated actor
// in the request context for downstream handlers.
func JWTAuth(jwtService JWTValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(constants.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, constants.BearerTokenPrefix) {
				utils.Unauthorized(w, constants.MsgAuthRequired)
				return
			}

			claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, constants.BearerTokenPrefix))
			if err != nil {
				utils.RespondError(w, err)
				return
			}

			actor := auth.ActorFromClaims(claims)
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// RequireCapability requires the authenticated actor to hold a named base
// capability. Must run after JWTAuth.
func RequireCapability(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := auth.ActorFromContext(r.Context())
			if err != nil {
				utils.Unauthorized(w, constants.MsgAuthRequired)
				return
			}

			if !actor.HasCapability(name) {
				utils.LogSecurityDenied(actor.ID, name, "missing capability")
				utils.Forbidden(w, constants.MsgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			w.Header().Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)

			next.ServeHTTP(w, r)
		})
	}
}
