package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/sanitize"
	"github.com/localewatch/localewatch/internal/utils"
)

// Store is the persistence surface the engine needs: named documents plus an
// integer schema-version marker. The MySQL option repository satisfies it.
type Store interface {
	// GetDocument retrieves a named document. A missing document is reported
	// with utils.ErrNotFound and an undecodable one with utils.ErrCorrupt.
	GetDocument(ctx context.Context, name string) (models.Document, error)

	// SetDocument stores a named document, creating or replacing it.
	SetDocument(ctx context.Context, name string, doc models.Document) error

	// GetInt retrieves a named integer marker. A missing marker is reported
	// with utils.ErrNotFound.
	GetInt(ctx context.Context, name string) (int, error)

	// SetInt stores a named integer marker, creating or replacing it.
	SetInt(ctx context.Context, name string, value int) error
}

// NonceVerifier checks an anti-forgery token against the action it was
// issued for.
type NonceVerifier interface {
	Verify(token, action string) bool
}

// Limiter admits or rejects an event for a key under a rate budget. The
// sliding-window limiter store satisfies it.
type Limiter interface {
	Allow(key string) bool
}

// Observer receives a change notification after every successful update,
// carrying both the previous and the new document.
type Observer func(models.ChangeEvent)

// UpdateOptions carries the per-call context for the update pipeline.
type UpdateOptions struct {
	// Actor is the authenticated caller. Required unless SkipAuth is set.
	Actor *auth.Actor

	// Token is the anti-forgery token accompanying the request. Required
	// unless SkipAuth is set.
	Token string

	// ActionName overrides the anti-forgery action the token is checked
	// against. Defaults to the settings-update action.
	ActionName string

	// ClientAddr is the caller's network address, combined with the actor ID
	// to key the rate-limit window.
	ClientAddr string

	// SkipAuth bypasses the permission and anti-forgery checks. Reserved for
	// trusted internal callers such as the migration path.
	SkipAuth bool

	// SkipRateLimit bypasses the update budget.
	SkipRateLimit bool
}

// Engine owns the settings document lifecycle: cached reads, schema
// migration on cold load, and the guarded update pipeline
// (authorize, rate-limit, sanitize, validate, persist, notify).
type Engine struct {
	store   Store
	nonces  NonceVerifier
	limiter Limiter

	mu    sync.RWMutex
	cache models.Document

	obsMu     sync.RWMutex
	observers []Observer

	legacyWarn sync.Once
}

// NewEngine creates a settings engine on top of a document store, an
// anti-forgery verifier and an update rate limiter.
func NewEngine(store Store, nonces NonceVerifier, limiter Limiter) *Engine {
	return &Engine{
		store:   store,
		nonces:  nonces,
		limiter: limiter,
	}
}

// Subscribe registers an observer invoked after every successful update.
// Observers run synchronously on the updating goroutine, in registration
// order.
func (e *Engine) Subscribe(observer Observer) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(e.observers, observer)
}

// All returns the full settings document, loading and migrating it from
// storage on a cold cache. The returned document is a deep copy; callers may
// mutate it freely.
//
// Parameters:
//   - ctx: Context for the storage round trips
//
// Returns:
//   - models.Document: The current settings document
//   - error: An AppError if loading or migration persistence fails
func (e *Engine) All(ctx context.Context) (models.Document, error) {
	e.mu.RLock()
	cached := e.cache
	e.mu.RUnlock()
	if cached != nil {
		return cached.Clone(), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check under the write lock; another goroutine may have loaded.
	if e.cache != nil {
		return e.cache.Clone(), nil
	}

	doc, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	e.cache = doc
	return doc.Clone(), nil
}

// load reads the persisted document and version marker, runs any pending
// migrations, and persists the result. A missing or undecodable document
// degrades to the defaults; a missing marker is treated as version zero.
// Reads only fail on storage errors, never on document state.
func (e *Engine) load(ctx context.Context) (models.Document, error) {
	doc, err := e.store.GetDocument(ctx, constants.OptionSettings)
	if err != nil {
		switch {
		case utils.IsNotFoundError(err):
			doc = Defaults()
		case utils.IsCorruptError(err):
			utils.LogError(err, map[string]interface{}{
				"option": constants.OptionSettings,
				"action": "falling back to defaults",
			})
			doc = Defaults()
		default:
			return nil, err
		}
	}

	version, err := e.store.GetInt(ctx, constants.OptionSchemaVersion)
	if err != nil {
		if !utils.IsNotFoundError(err) {
			return nil, err
		}
		version = 0
	}

	migrated, changed := Migrate(doc, version)
	if changed {
		if err := e.store.SetDocument(ctx, constants.OptionSettings, migrated); err != nil {
			return nil, err
		}
		if err := e.store.SetInt(ctx, constants.OptionSchemaVersion, CurrentSchemaVersion); err != nil {
			return nil, err
		}
		utils.LogDebugEvent(constants.LogEventMigration, map[string]interface{}{
			"from_version": version,
			"to_version":   CurrentSchemaVersion,
		})
	}

	e.warnDeprecatedKeys(migrated)
	return migrated, nil
}

// warnDeprecatedKeys logs once per process when the stored document still
// carries keys written by old releases.
func (e *Engine) warnDeprecatedKeys(doc models.Document) {
	if !doc.Has(constants.KeyLegacyWebhookURL) && !doc.Has(constants.KeyLocalesSlack) {
		return
	}
	e.legacyWarn.Do(func() {
		utils.LogDebugEvent("deprecated settings keys present", map[string]interface{}{
			"legacy_webhook_url": doc.Has(constants.KeyLegacyWebhookURL),
			"locales_slack":      doc.Has(constants.KeyLocalesSlack),
		})
	})
}

// Get returns a single value addressed by dotted path, or the supplied
// default when the path does not resolve.
func (e *Engine) Get(ctx context.Context, path string, def any) (any, error) {
	doc, err := e.All(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Get(path, def), nil
}

// Update runs the full guarded pipeline over a raw incoming document:
// authorize, rate-limit, sanitize, validate, persist, invalidate the cache
// and notify observers. The steps are strictly sequential; any failure
// aborts every later step and leaves the stored document untouched.
//
// Parameters:
//   - ctx: Context for the storage round trips
//   - raw: The incoming document, exactly as supplied by the caller
//   - opts: Per-call actor, token, address and skip flags
//
// Returns:
//   - models.Document: The persisted document on success
//   - error: A forbidden, rate-limit, sanitization, validation or internal
//     AppError describing the first failing step
func (e *Engine) Update(ctx context.Context, raw models.Document, opts UpdateOptions) (models.Document, error) {
	if err := e.authorize(opts); err != nil {
		return nil, err
	}
	if err := e.throttle(opts); err != nil {
		return nil, err
	}

	sanitized, fieldErrs := sanitize.Document(raw)
	if !fieldErrs.Empty() {
		return nil, fieldErrs.Err()
	}

	if err := Validate(sanitized); err != nil {
		return nil, err
	}

	old, err := e.All(ctx)
	if err != nil {
		return nil, err
	}

	// Updates never regress the schema stamp the migration runner applied.
	sanitized[constants.KeySchemaVersion] = CurrentSchemaVersion

	if err := e.store.SetDocument(ctx, constants.OptionSettings, sanitized); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache = sanitized
	e.mu.Unlock()

	actorID := int64(0)
	if opts.Actor != nil {
		actorID = opts.Actor.ID
	}
	utils.LogDebugEvent(constants.LogEventSettingsUpdate, map[string]interface{}{
		constants.UserIDContextKey: actorID,
		"client_addr":              opts.ClientAddr,
	})

	e.notify(models.ChangeEvent{Old: old, New: sanitized.Clone()})
	return sanitized.Clone(), nil
}

// authorize enforces the manage-settings capability and the anti-forgery
// token. Both failures are terminal and logged as security denials; the
// caller only ever learns "not permitted".
func (e *Engine) authorize(opts UpdateOptions) error {
	if opts.SkipAuth {
		return nil
	}

	if opts.Actor == nil {
		utils.LogSecurityDenied(0, constants.ActionUpdateSettings, "no actor")
		return utils.NewForbiddenError(constants.MsgAccessDenied)
	}
	if !opts.Actor.Administrator && !opts.Actor.HasCapability(constants.CapManageSettings) {
		utils.LogSecurityDenied(opts.Actor.ID, constants.ActionUpdateSettings, "missing capability")
		return utils.NewForbiddenError(constants.MsgAccessDenied)
	}

	action := opts.ActionName
	if action == "" {
		action = constants.ActionUpdateSettings
	}
	if e.nonces == nil || !e.nonces.Verify(opts.Token, action) {
		utils.LogSecurityDenied(opts.Actor.ID, action, "anti-forgery check failed")
		return utils.NewForbiddenError(constants.MsgInvalidNonce)
	}

	return nil
}

// throttle enforces the update budget keyed by actor and address. Exceeding
// it is terminal but deliberately not logged as a security event.
func (e *Engine) throttle(opts UpdateOptions) error {
	if opts.SkipRateLimit || e.limiter == nil {
		return nil
	}

	actorID := int64(0)
	if opts.Actor != nil {
		actorID = opts.Actor.ID
	}
	key := fmt.Sprintf("%d:%s", actorID, opts.ClientAddr)
	if !e.limiter.Allow(key) {
		return utils.NewRateLimitError(constants.MsgTooManyUpdates)
	}

	return nil
}

// ClearCache drops the in-process read cache. The next read reloads from the
// authoritative stored document.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	e.cache = nil
	e.mu.Unlock()
}

// notify delivers a change event to every registered observer.
func (e *Engine) notify(event models.ChangeEvent) {
	e.obsMu.RLock()
	observers := make([]Observer, len(e.observers))
	copy(observers, e.observers)
	e.obsMu.RUnlock()

	for _, observer := range observers {
		observer(event)
	}
}
