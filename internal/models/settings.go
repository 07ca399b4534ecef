// Package models provides data structures and operations for the LocaleWatch
// application. This file contains the typed views of the settings document's
// known sections. The document itself stays a nested map so unknown keys are
// preserved; these views give the validator and downstream consumers typed
// access to the fields the engine understands.
package models

import (
	"github.com/localewatch/localewatch/internal/constants"
)

// UIConfig holds display preferences for the admin surface.
type UIConfig struct {
	// Label is the free-text menu label.
	Label string `json:"label"`

	// Icon is the enumerated admin-menu icon choice.
	Icon string `json:"icon"`
}

// SurveillanceConfig holds the progress-polling configuration.
type SurveillanceConfig struct {
	// Enabled turns the polling loop on or off.
	Enabled bool `json:"enabled"`

	// Interval is the polling interval in minutes.
	Interval int `json:"interval"`

	// AutoStart schedules the first check immediately after activation.
	AutoStart bool `json:"auto_start"`

	// MaxProjectsPerCheck caps how many projects a single run may touch.
	MaxProjectsPerCheck int `json:"max_projects_per_check"`

	// RequestTimeout is the upstream request timeout in seconds.
	RequestTimeout int `json:"request_timeout"`
}

// DigestConfig describes a digest delivery schedule.
type DigestConfig struct {
	// Type is either "interval" or "fixed_time".
	Type string `json:"type"`

	// IntervalMinutes is the delivery interval for interval digests.
	IntervalMinutes int `json:"interval_minutes"`

	// FixedTime is the daily delivery time (24h HH:MM) for fixed-time digests.
	FixedTime string `json:"fixed_time"`

	// Enabled turns digest delivery on or off.
	Enabled bool `json:"enabled"`
}

// NotificationDefaults holds the fallback notification configuration applied
// when a webhook does not override it.
type NotificationDefaults struct {
	// NewStringsThreshold is the minimum number of new strings that triggers
	// a new-strings notification.
	NewStringsThreshold int `json:"new_strings_threshold"`

	// Milestones is the sorted unique set of completion percentages that
	// trigger milestone notifications.
	Milestones []int `json:"milestones"`

	// Mode is either "immediate" or "digest".
	Mode string `json:"mode"`

	// Digest is the digest schedule used when Mode is "digest".
	Digest DigestConfig `json:"digest"`
}

// ProjectRef identifies a watched project by type and slug.
type ProjectRef struct {
	Type string `json:"type"`
	Slug string `json:"slug"`
}

// Key returns the composite identifier used to index the project-editor
// table. The key is only meaningful when both parts are present; an empty
// type or slug degrades the key to empty, which never matches any stored
// mapping.
func (p ProjectRef) Key() string {
	if p.Type == "" || p.Slug == "" {
		return ""
	}
	return p.Type + constants.ProjectKeySeparator + p.Slug
}

// WebhookScopes restricts which locales and projects a webhook reports on.
// Empty scope lists mean "all".
type WebhookScopes struct {
	Locales  []string     `json:"locales"`
	Projects []ProjectRef `json:"projects"`
}

// WebhookConfig describes one chat webhook target.
type WebhookConfig struct {
	// Enabled turns delivery to this webhook on or off.
	Enabled bool `json:"enabled"`

	// WebhookURL is a secret field: either a plaintext URL or an opaque
	// ciphertext blob from the platform's secret store.
	WebhookURL string `json:"webhook_url"`

	// Types is the subset of event categories this webhook subscribes to.
	Types []string `json:"types"`

	// Threshold is the completion percentage above which completion updates
	// are reported.
	Threshold int `json:"threshold"`

	// Milestones overrides the default milestone set for this webhook.
	Milestones []int `json:"milestones"`

	// Mode is either "immediate" or "digest".
	Mode string `json:"mode"`

	// Digest is the digest schedule used when Mode is "digest".
	Digest DigestConfig `json:"digest"`

	// Scopes restricts which locales and projects this webhook covers.
	Scopes WebhookScopes `json:"scopes"`
}

// LocaleOverride is a per-locale webhook configuration. The Override flag
// gates whether the locale webhook supersedes the global one.
type LocaleOverride struct {
	Webhook  WebhookConfig `json:"webhook"`
	Override bool          `json:"override"`
}

// ParseUI extracts the typed UI section from a sanitized document.
func ParseUI(d Document) UIConfig {
	section := d.Section(constants.SectionUI)
	return UIConfig{
		Label: asString(section[constants.FieldLabel]),
		Icon:  asString(section[constants.FieldIcon]),
	}
}

// ParseSurveillance extracts the typed surveillance section from a sanitized
// document.
func ParseSurveillance(d Document) SurveillanceConfig {
	section := d.Section(constants.SectionSurveillance)
	return SurveillanceConfig{
		Enabled:             asBool(section[constants.FieldEnabled]),
		Interval:            asInt(section[constants.FieldInterval]),
		AutoStart:           asBool(section[constants.FieldAutoStart]),
		MaxProjectsPerCheck: asInt(section[constants.FieldMaxProjects]),
		RequestTimeout:      asInt(section[constants.FieldRequestTimeout]),
	}
}

// ParseNotificationDefaults extracts the typed notification-defaults section
// from a sanitized document.
func ParseNotificationDefaults(d Document) NotificationDefaults {
	section := d.Section(constants.SectionNotificationDefaults)
	return NotificationDefaults{
		NewStringsThreshold: asInt(section[constants.FieldStringsThreshold]),
		Milestones:          asIntSlice(section[constants.FieldMilestones]),
		Mode:                asString(section[constants.FieldMode]),
		Digest:              parseDigest(section[constants.FieldDigest]),
	}
}

// ParseGlobalWebhook extracts the typed global webhook section from a
// sanitized document.
func ParseGlobalWebhook(d Document) WebhookConfig {
	return parseWebhook(d.Section(constants.SectionGlobalWebhook))
}

// ParseLocaleOverrides extracts the per-locale webhook overrides from a
// sanitized document, keyed by locale code. Locale entries that are not maps
// are skipped; unknown keys inside an entry are ignored here but remain in
// the document.
func ParseLocaleOverrides(d Document) map[string]LocaleOverride {
	section := d.Section(constants.SectionLocales)
	out := make(map[string]LocaleOverride, len(section))
	for locale, raw := range section {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		webhook := map[string]any{}
		if m, ok := entry[constants.FieldWebhook].(map[string]any); ok {
			webhook = m
		}
		out[locale] = LocaleOverride{
			Webhook:  parseWebhook(webhook),
			Override: asBool(entry[constants.FieldOverride]),
		}
	}
	return out
}

// parseWebhook builds a typed webhook view from a section map.
func parseWebhook(section map[string]any) WebhookConfig {
	return WebhookConfig{
		Enabled:    asBool(section[constants.FieldEnabled]),
		WebhookURL: asString(section[constants.FieldWebhookURL]),
		Types:      asStringSlice(section[constants.FieldTypes]),
		Threshold:  asInt(section[constants.FieldThreshold]),
		Milestones: asIntSlice(section[constants.FieldMilestones]),
		Mode:       asString(section[constants.FieldMode]),
		Digest:     parseDigest(section[constants.FieldDigest]),
		Scopes:     parseScopes(section[constants.FieldScopes]),
	}
}

// parseDigest builds a typed digest view from a nested value.
func parseDigest(v any) DigestConfig {
	section, ok := v.(map[string]any)
	if !ok {
		return DigestConfig{Type: constants.DigestTypeInterval}
	}
	return DigestConfig{
		Type:            asString(section[constants.FieldDigestType]),
		IntervalMinutes: asInt(section[constants.FieldIntervalMinutes]),
		FixedTime:       asString(section[constants.FieldFixedTime]),
		Enabled:         asBool(section[constants.FieldEnabled]),
	}
}

// parseScopes builds a typed scope view from a nested value.
func parseScopes(v any) WebhookScopes {
	section, ok := v.(map[string]any)
	if !ok {
		return WebhookScopes{}
	}

	scopes := WebhookScopes{
		Locales: asStringSlice(section[constants.FieldScopeLocales]),
	}

	rawProjects, ok := section[constants.FieldScopeProjects].([]any)
	if !ok {
		return scopes
	}
	for _, raw := range rawProjects {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ref := ProjectRef{
			Type: asString(entry[constants.FieldProjectType]),
			Slug: asString(entry[constants.FieldProjectSlug]),
		}
		if ref.Key() != "" {
			scopes.Projects = append(scopes.Projects, ref)
		}
	}

	return scopes
}

// asBool reads a boolean from a sanitized document value.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asInt reads an integer from a sanitized document value. JSON round trips
// turn ints into float64, so both representations are accepted.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// asString reads a string from a sanitized document value.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asStringSlice reads a string list from a sanitized document value. Both
// []string and []any (post-JSON) representations are accepted.
func asStringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// asIntSlice reads an integer list from a sanitized document value.
func asIntSlice(v any) []int {
	switch list := v.(type) {
	case []int:
		return list
	case []any:
		out := make([]int, 0, len(list))
		for _, item := range list {
			out = append(out, asInt(item))
		}
		return out
	default:
		return nil
	}
}
