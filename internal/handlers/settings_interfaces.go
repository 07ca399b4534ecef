// Package handlers implements the HTTP handlers for the LocaleWatch API.
package handlers

import (
	"context"

	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/settings"
)

// SettingsEngineInterface defines the settings operations the handlers
// need. *settings.Engine satisfies it; tests substitute a mock.
type SettingsEngineInterface interface {
	// All returns the full settings document.
	All(ctx context.Context) (models.Document, error)

	// Get returns a single value addressed by dotted path.
	Get(ctx context.Context, path string, def any) (any, error)

	// Update runs the guarded update pipeline over a raw document.
	Update(ctx context.Context, raw models.Document, opts settings.UpdateOptions) (models.Document, error)

	// ClearCache drops the in-process read cache.
	ClearCache()
}

// NonceIssuer issues anti-forgery tokens for named actions.
type NonceIssuer interface {
	Create(action string) string
}
