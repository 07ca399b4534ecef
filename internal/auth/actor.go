// Package auth provides actor identity, JWT token handling and anti-forgery
// tokens for the API. An Actor is the authenticated caller as the rest of
// the application sees it: an ID, the platform administrator flag, and the
// set of named base capabilities the actor holds.
package auth

import (
	"context"

	"github.com/localewatch/localewatch/internal/utils"
)

// contextKey is a private type for context values to avoid collisions.
type contextKey string

// actorContextKey is the context key under which the authenticated actor is
// stored by the authentication middleware.
const actorContextKey contextKey = "actor"

// Actor is the authenticated caller's identity.
type Actor struct {
	// ID is the actor's unique identifier.
	ID int64 `json:"id"`

	// Username is the actor's login name.
	Username string `json:"username"`

	// Administrator marks holders of the platform's built-in administrator
	// permission. Administrators pass every capability check wholesale.
	Administrator bool `json:"administrator"`

	// Capabilities is the set of named base capabilities granted to the
	// actor directly.
	Capabilities []string `json:"capabilities"`
}

// HasCapability reports whether the actor holds a named base capability.
// Administrators hold every capability; the flag is inspected directly from
// the actor record, never resolved through a permission query.
func (a *Actor) HasCapability(name string) bool {
	if a == nil {
		return false
	}
	if a.Administrator {
		return true
	}
	for _, capability := range a.Capabilities {
		if capability == name {
			return true
		}
	}
	return false
}

// WithActor returns a context carrying the authenticated actor.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext extracts the authenticated actor from a request context.
//
// Returns:
//   - *Actor: The authenticated actor
//   - error: An unauthorized AppError if no actor is present
func ActorFromContext(ctx context.Context) (*Actor, error) {
	actor, ok := ctx.Value(actorContextKey).(*Actor)
	if !ok || actor == nil {
		return nil, utils.NewUnauthorizedError("no authenticated actor in request context")
	}
	return actor, nil
}
