// Package constants provides shared constant values used throughout the application.
//
// The settings_const.go file defines the keys and enumerated values of the settings
// document. The document is a nested key/value structure; these constants name its
// known sections and fields. Unknown keys at any level are preserved verbatim, so
// this list is descriptive of what the engine understands, not exhaustive of what
// the store may contain.
package constants

// Top-Level Sections name the known sections of the settings document.
const (
	// SectionUI holds display preferences for the admin surface.
	SectionUI = "ui"

	// SectionSurveillance holds the progress-polling configuration.
	SectionSurveillance = "surveillance"

	// SectionNotificationDefaults holds the fallback notification configuration.
	SectionNotificationDefaults = "notification_defaults"

	// SectionGlobalWebhook holds the site-wide webhook configuration.
	SectionGlobalWebhook = "global_webhook"

	// SectionLocales holds per-locale webhook overrides keyed by locale code.
	SectionLocales = "locales"

	// KeyLegacyWebhookURL is the deprecated single webhook URL field, retained
	// for settings documents written by old releases.
	KeyLegacyWebhookURL = "legacy_webhook_url"

	// KeyLocalesSlack is the deprecated flat locale-to-secret mapping, retained
	// for settings documents written by old releases.
	KeyLocalesSlack = "locales_slack"

	// KeySchemaVersion is the internal schema-version tag stamped into the
	// document by the migration runner.
	KeySchemaVersion = "schema_version"
)

// Field Keys name the known fields within document sections.
const (
	FieldEnabled          = "enabled"
	FieldInterval         = "interval"
	FieldAutoStart        = "auto_start"
	FieldMaxProjects      = "max_projects_per_check"
	FieldRequestTimeout   = "request_timeout"
	FieldLabel            = "label"
	FieldIcon             = "icon"
	FieldThreshold        = "threshold"
	FieldStringsThreshold = "new_strings_threshold"
	FieldMilestones       = "milestones"
	FieldMode             = "mode"
	FieldDigest           = "digest"
	FieldWebhookURL       = "webhook_url"
	FieldTypes            = "types"
	FieldScopes           = "scopes"
	FieldScopeLocales     = "locales"
	FieldScopeProjects    = "projects"
	FieldOverride         = "override"
	FieldWebhook          = "webhook"
	FieldDigestType       = "type"
	FieldIntervalMinutes  = "interval_minutes"
	FieldFixedTime        = "fixed_time"
	FieldProjectType      = "type"
	FieldProjectSlug      = "slug"
)

// Notification Modes enumerate how matched events are delivered.
const (
	// ModeImmediate delivers a chat message as soon as an event is detected.
	ModeImmediate = "immediate"

	// ModeDigest batches events and delivers them on a digest schedule.
	ModeDigest = "digest"
)

// Digest Types enumerate the supported digest schedules.
const (
	// DigestTypeInterval delivers digests every fixed number of minutes.
	DigestTypeInterval = "interval"

	// DigestTypeFixedTime delivers digests once per day at a fixed time.
	DigestTypeFixedTime = "fixed_time"
)

// Event Types enumerate the notification event categories a webhook may subscribe to.
const (
	EventNewStrings       = "new_strings"
	EventCompletionUpdate = "completion_update"
	EventNeedsAttention   = "needs_attention"
	EventMilestone        = "milestone"
)

// UI Icons enumerate the selectable admin-menu icon choices.
const (
	IconGlobe     = "globe"
	IconTranslate = "translate"
	IconFlag      = "flag"
	IconBell      = "bell"
)
