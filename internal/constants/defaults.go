// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide sensible defaults for configuration settings and establish
// boundaries for the settings document fields. Changes to these values may significantly
// impact plugin behavior, notification volume, and abuse resistance.
package constants

import "time"

// Surveillance Limits define the boundaries for the progress-polling configuration.
// These constants protect the upstream translation-progress service from abusive
// polling schedules.
const (
	// MinSurveillanceInterval is the minimum polling interval in minutes.
	MinSurveillanceInterval = 1

	// DefaultSurveillanceInterval is the polling interval in minutes used when
	// none is configured.
	DefaultSurveillanceInterval = 30

	// MinProjectsPerCheck is the minimum number of projects per polling run.
	MinProjectsPerCheck = 1

	// MaxProjectsPerCheck is the maximum number of projects per polling run.
	MaxProjectsPerCheck = 100

	// DefaultProjectsPerCheck is the number of projects per polling run used
	// when none is configured.
	DefaultProjectsPerCheck = 10

	// MinRequestTimeout is the minimum upstream request timeout in seconds.
	MinRequestTimeout = 3

	// MaxRequestTimeout is the maximum upstream request timeout in seconds.
	MaxRequestTimeout = 300

	// DefaultRequestTimeout is the upstream request timeout in seconds used
	// when none is configured.
	DefaultRequestTimeout = 30
)

// Notification Limits define the boundaries for notification thresholds and milestones.
const (
	// MinMilestone is the lowest allowed completion milestone percentage.
	MinMilestone = 0

	// MaxMilestone is the highest allowed completion milestone percentage.
	MaxMilestone = 100

	// MinNotificationThreshold is the lowest allowed new-strings threshold.
	MinNotificationThreshold = 0

	// MaxNotificationThreshold is the highest allowed completion threshold percentage.
	MaxNotificationThreshold = 100

	// MinDigestIntervalMinutes is the floor for digest delivery intervals.
	// Enforced during cross-field validation while an interval digest is
	// enabled.
	MinDigestIntervalMinutes = 15

	// DefaultDigestIntervalMinutes is the digest delivery interval used when
	// none is configured.
	DefaultDigestIntervalMinutes = 60

	// DefaultDigestFixedTime is the fixed digest delivery time (24h HH:MM)
	// used when none is configured or the configured value is malformed.
	DefaultDigestFixedTime = "09:00"
)

// Secret Field Detection defines the heuristic separating raw webhook URLs from
// ciphertext blobs produced by the platform's secret store. A stored value that
// matches the ciphertext shape is passed through sanitization unchanged.
const (
	// MinCiphertextLength is the minimum length of a value treated as ciphertext.
	// Anything this long consisting solely of base64 alphabet characters is
	// assumed to be an encrypted secret, never re-validated as a URL.
	MinCiphertextLength = 50
)

// Locale Limits define boundaries for locale code handling.
const (
	// MaxLocaleCodeLength is the maximum accepted length of a locale code.
	MaxLocaleCodeLength = 20
)

// Settings Update Throttling defines the anti-abuse window for the settings
// update pipeline. Exceeding the budget returns a rate-limit error without
// paying the sanitize/validate cost.
const (
	// SettingsUpdateLimit is the maximum number of update calls allowed per
	// actor/address pair within SettingsUpdateWindow.
	SettingsUpdateLimit = 20

	// SettingsUpdateWindow is the length of the sliding rate-limit window.
	SettingsUpdateWindow = 15 * time.Minute
)

// Default Configuration Values define fallback settings when not specified in
// configuration. These constants provide sensible defaults for core service settings.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultReadTimeout is the default HTTP server read timeout.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the default HTTP server write timeout.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultShutdownTimeout is the default graceful shutdown timeout.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultJWTExpiry is the default access token lifetime.
	DefaultJWTExpiry = 15 * time.Minute

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultNonceLifetime is the validity window of an anti-forgery token.
	// Verification also accepts tokens from the immediately preceding window.
	DefaultNonceLifetime = 12 * time.Hour
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Request Limits define maximum allowed sizes for inbound payloads.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1048576 // 1MB in bytes
)

// Auth Constants define values related to token handling.
const (
	// DefaultJWTIssuer is the issuer claim value for JWT tokens.
	DefaultJWTIssuer = "localewatch-api"

	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "
)

// Logging Constants define values used when emitting log entries.
const (
	// LogRedactedValue replaces sensitive values in log output.
	LogRedactedValue = "[REDACTED]"
)
