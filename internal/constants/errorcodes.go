// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling, categorization,
// and messaging. User-facing error messages are carefully crafted to be informative
// without revealing why a request was denied beyond "not permitted" / "too many
// requests"; permission and rate-limit denials are intentionally generic.
package constants

// Error Types define the categories of errors that can occur in the application.
const (
	// ErrorNotFound indicates that a requested resource could not be found.
	ErrorNotFound = "resource not found"

	// ErrorUnauthorized indicates that authentication is required but was not provided.
	ErrorUnauthorized = "unauthorized access"

	// ErrorForbidden indicates that the requester lacks sufficient permissions.
	ErrorForbidden = "forbidden access"

	// ErrorBadRequest indicates that the request was malformed or invalid.
	ErrorBadRequest = "invalid request"

	// ErrorInternalServer indicates an unexpected internal error.
	ErrorInternalServer = "internal server error"

	// ErrorValidation indicates that cross-field validation failed.
	ErrorValidation = "validation error"

	// ErrorSanitization indicates that per-field input normalization failed.
	ErrorSanitization = "sanitization error"

	// ErrorRateLimited indicates that the client exceeded an update budget.
	ErrorRateLimited = "rate limited"

	// ErrorInvalidToken indicates that a token is malformed or invalid.
	ErrorInvalidToken = "invalid token"

	// ErrorExpiredToken indicates that a token has expired.
	ErrorExpiredToken = "expired token"
)

// User-Facing Error Messages define standardized messages that can be safely
// presented to users.
const (
	// MsgAuthRequired indicates that the user must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"

	// MsgAccessDenied indicates that the actor lacks permission for the requested action.
	MsgAccessDenied = "You don't have permission to perform this action"

	// MsgInvalidNonce indicates that the anti-forgery check failed.
	MsgInvalidNonce = "Security check failed"

	// MsgTooManyUpdates indicates that the settings update budget was exceeded.
	MsgTooManyUpdates = "Too many update requests, try again later"

	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgRequestBodyTooLarge indicates that the request payload exceeded the limit.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgEmptyRequestBody indicates that a body was expected but missing.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates that the request body could not be parsed.
	MsgMalformedJSON = "Request body contains malformed JSON"
)

// Validation Error Codes tag individual field failures in sanitize/validate
// results so callers can highlight the specific offending input.
const (
	// CodeGlobalWebhookURLMissing flags an enabled global webhook without a URL.
	CodeGlobalWebhookURLMissing = "global_webhook_url_missing"

	// CodeGlobalWebhookTypesMissing flags an enabled global webhook without
	// subscribed event types.
	CodeGlobalWebhookTypesMissing = "global_webhook_types_missing"

	// CodeSurveillanceInterval flags an invalid polling interval.
	CodeSurveillanceInterval = "surveillance_interval_invalid"

	// CodeSurveillanceMaxProjects flags an invalid projects-per-check value.
	CodeSurveillanceMaxProjects = "surveillance_max_projects_invalid"

	// CodeLocaleWebhookURLMissing flags an enabled per-locale webhook without
	// a URL. One error is recorded per offending locale.
	CodeLocaleWebhookURLMissing = "locale_webhook_url_missing"

	// CodeMilestonesDuplicate flags duplicate milestone values.
	CodeMilestonesDuplicate = "milestones_duplicate"

	// CodeDigestInterval flags a digest interval below the minimum.
	CodeDigestInterval = "digest_interval_too_short"
)

// Log Events categorize structured log entries for filtering.
const (
	// LogEventSettingsUpdate marks a settings document change.
	LogEventSettingsUpdate = "settings_update"

	// LogEventSecurityDenied marks a failed permission or anti-forgery check.
	LogEventSecurityDenied = "security_denied"

	// LogEventMigration marks a schema migration run.
	LogEventMigration = "schema_migration"
)

// Context Keys name values stored in request contexts and log fields.
const (
	// UserIDContextKey is the log/context field for the authenticated actor ID.
	UserIDContextKey = "user_id"

	// UsernameContextKey is the log/context field for the authenticated username.
	UsernameContextKey = "username"

	// RequestIDContextKey is the log/context field for the request ID.
	RequestIDContextKey = "request_id"
)
