package sanitize

import (
	"sort"

	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/utils"
)

// FieldErrors accumulates field-tagged sanitization failures. Sanitization
// never short-circuits: all fields are processed so every error is surfaced
// together, keyed by field for inline form display.
type FieldErrors struct {
	messages map[string]string
}

// NewFieldErrors returns an empty accumulator.
func NewFieldErrors() *FieldErrors {
	return &FieldErrors{messages: make(map[string]string)}
}

// Add records a failure for a field. The first message per field wins.
func (e *FieldErrors) Add(field, message string) {
	if _, exists := e.messages[field]; !exists {
		e.messages[field] = message
	}
}

// Empty reports whether any failure was recorded.
func (e *FieldErrors) Empty() bool {
	return len(e.messages) == 0
}

// Fields returns the offending field names in sorted order.
func (e *FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e.messages))
	for field := range e.messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Details returns a copy of the field-to-message map.
func (e *FieldErrors) Details() map[string]string {
	details := make(map[string]string, len(e.messages))
	for field, message := range e.messages {
		details[field] = message
	}
	return details
}

// Err converts the accumulator into a sanitization error, or nil when empty.
func (e *FieldErrors) Err() *utils.AppError {
	if e.Empty() {
		return nil
	}
	return utils.NewSanitizationError(e.Details())
}

// Document runs every field sanitizer over a raw settings document, section
// by section, and returns the normalized document together with any
// accumulated errors. Unknown keys at every nesting level reappear unchanged
// in the output; only the fields the engine understands are rewritten.
//
// The returned document is always fully populated even when errors were
// recorded, but callers must not persist it unless the error accumulator is
// empty.
func Document(raw models.Document) (models.Document, *FieldErrors) {
	errs := NewFieldErrors()
	out := raw.Clone()
	if out == nil {
		out = models.NewDocument()
	}

	out[constants.SectionUI] = sanitizeUI(raw.Section(constants.SectionUI))
	out[constants.SectionSurveillance] = sanitizeSurveillance(raw.Section(constants.SectionSurveillance), errs)
	out[constants.SectionNotificationDefaults] = sanitizeNotificationDefaults(raw.Section(constants.SectionNotificationDefaults), errs)
	out[constants.SectionGlobalWebhook] = sanitizeWebhook(raw.Section(constants.SectionGlobalWebhook), constants.SectionGlobalWebhook, errs)
	out[constants.SectionLocales] = sanitizeLocaleOverrides(raw.Section(constants.SectionLocales), errs)

	if raw.Has(constants.KeyLegacyWebhookURL) {
		out[constants.KeyLegacyWebhookURL] = SecretURL(errs, constants.KeyLegacyWebhookURL, raw[constants.KeyLegacyWebhookURL])
	}
	if raw.Has(constants.KeyLocalesSlack) {
		out[constants.KeyLocalesSlack] = sanitizeLocalesSlack(raw.Section(constants.KeyLocalesSlack), errs)
	}

	return out, errs
}

// sanitizeUI normalizes the display-preference section.
func sanitizeUI(section map[string]any) map[string]any {
	out := copySection(section)
	out[constants.FieldLabel] = Label(section[constants.FieldLabel], 64)
	out[constants.FieldIcon] = Enum(section[constants.FieldIcon], []string{
		constants.IconGlobe,
		constants.IconTranslate,
		constants.IconFlag,
		constants.IconBell,
	}, constants.IconGlobe)
	return out
}

// sanitizeSurveillance normalizes the polling section. The interval and
// projects-per-check floors are cross-field rules (they only matter while
// surveillance is enabled) and are left to validation; the request timeout
// and the projects-per-check ceiling are hard bounds rejected here.
func sanitizeSurveillance(section map[string]any, errs *FieldErrors) map[string]any {
	out := copySection(section)
	out[constants.FieldEnabled] = Bool(section[constants.FieldEnabled])
	out[constants.FieldInterval] = FreeInt(section[constants.FieldInterval], constants.DefaultSurveillanceInterval)
	out[constants.FieldAutoStart] = Bool(section[constants.FieldAutoStart])
	out[constants.FieldMaxProjects] = BoundedInt(errs,
		"surveillance.max_projects_per_check",
		section[constants.FieldMaxProjects],
		0, constants.MaxProjectsPerCheck,
		constants.DefaultProjectsPerCheck,
	)
	out[constants.FieldRequestTimeout] = BoundedInt(errs,
		"surveillance.request_timeout",
		section[constants.FieldRequestTimeout],
		constants.MinRequestTimeout, constants.MaxRequestTimeout,
		constants.DefaultRequestTimeout,
	)
	return out
}

// sanitizeNotificationDefaults normalizes the fallback notification section.
func sanitizeNotificationDefaults(section map[string]any, errs *FieldErrors) map[string]any {
	out := copySection(section)
	out[constants.FieldStringsThreshold] = NonNegativeInt(errs,
		"notification_defaults.new_strings_threshold",
		section[constants.FieldStringsThreshold],
		0,
	)
	out[constants.FieldMilestones] = Milestones(section[constants.FieldMilestones])
	out[constants.FieldMode] = Enum(section[constants.FieldMode], []string{
		constants.ModeImmediate,
		constants.ModeDigest,
	}, constants.ModeImmediate)
	out[constants.FieldDigest] = sanitizeDigest(section[constants.FieldDigest])
	return out
}

// sanitizeWebhook normalizes one webhook configuration block. The field
// prefix keys accumulated errors so per-locale failures stay distinguishable.
func sanitizeWebhook(section map[string]any, prefix string, errs *FieldErrors) map[string]any {
	out := copySection(section)
	out[constants.FieldEnabled] = Bool(section[constants.FieldEnabled])
	out[constants.FieldWebhookURL] = SecretURL(errs, prefix+".webhook_url", section[constants.FieldWebhookURL])
	out[constants.FieldTypes] = EventTypes(section[constants.FieldTypes])
	out[constants.FieldThreshold] = BoundedInt(errs,
		prefix+".threshold",
		section[constants.FieldThreshold],
		constants.MinNotificationThreshold, constants.MaxNotificationThreshold,
		0,
	)
	out[constants.FieldMilestones] = Milestones(section[constants.FieldMilestones])
	out[constants.FieldMode] = Enum(section[constants.FieldMode], []string{
		constants.ModeImmediate,
		constants.ModeDigest,
	}, constants.ModeImmediate)
	out[constants.FieldDigest] = sanitizeDigest(section[constants.FieldDigest])
	out[constants.FieldScopes] = sanitizeScopes(section[constants.FieldScopes])
	return out
}

// sanitizeDigest normalizes a digest configuration. The interval-minutes
// floor is a soft rule tied to the digest being enabled, so it is coerced
// here and range-checked during validation.
func sanitizeDigest(v any) map[string]any {
	section, _ := v.(map[string]any)
	out := copySection(section)
	out[constants.FieldDigestType] = Enum(section[constants.FieldDigestType], []string{
		constants.DigestTypeInterval,
		constants.DigestTypeFixedTime,
	}, constants.DigestTypeInterval)
	out[constants.FieldIntervalMinutes] = FreeInt(section[constants.FieldIntervalMinutes], constants.DefaultDigestIntervalMinutes)
	out[constants.FieldFixedTime] = FixedTime(section[constants.FieldFixedTime])
	out[constants.FieldEnabled] = Bool(section[constants.FieldEnabled])
	return out
}

// sanitizeScopes normalizes a webhook scope block. Project entries missing
// either a type or a slug degrade to an empty key and are dropped.
func sanitizeScopes(v any) map[string]any {
	section, _ := v.(map[string]any)
	out := copySection(section)
	out[constants.FieldScopeLocales] = LocaleList(section[constants.FieldScopeLocales])

	projects := []any{}
	if rawProjects, ok := section[constants.FieldScopeProjects].([]any); ok {
		for _, raw := range rawProjects {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			projType := Slug(entry[constants.FieldProjectType])
			projSlug := Slug(entry[constants.FieldProjectSlug])
			if projType == "" || projSlug == "" {
				continue
			}
			projects = append(projects, map[string]any{
				constants.FieldProjectType: projType,
				constants.FieldProjectSlug: projSlug,
			})
		}
	}
	out[constants.FieldScopeProjects] = projects

	return out
}

// sanitizeLocaleOverrides normalizes the per-locale override map. Entry keys
// are locale codes and are normalized like any other locale value; entries
// whose code sanitizes to empty are dropped. Unknown keys inside an entry are
// preserved.
func sanitizeLocaleOverrides(section map[string]any, errs *FieldErrors) map[string]any {
	out := make(map[string]any, len(section))
	for rawCode, rawEntry := range section {
		code := Locale(rawCode)
		if code == "" {
			continue
		}

		entry, ok := rawEntry.(map[string]any)
		if !ok {
			out[code] = rawEntry
			continue
		}

		sanitized := copySection(entry)
		webhook, _ := entry[constants.FieldWebhook].(map[string]any)
		sanitized[constants.FieldWebhook] = sanitizeWebhook(webhook, "locales."+code+".webhook", errs)
		sanitized[constants.FieldOverride] = Bool(entry[constants.FieldOverride])
		out[code] = sanitized
	}
	return out
}

// sanitizeLocalesSlack normalizes the legacy flat locale-to-secret mapping.
func sanitizeLocalesSlack(section map[string]any, errs *FieldErrors) map[string]any {
	out := make(map[string]any, len(section))
	for rawCode, rawValue := range section {
		code := Locale(rawCode)
		if code == "" {
			continue
		}
		out[code] = SecretURL(errs, "locales_slack."+code, rawValue)
	}
	return out
}

// copySection shallow-copies a section map so unknown keys survive while
// known fields are overwritten. A nil section yields an empty map.
func copySection(section map[string]any) map[string]any {
	out := make(map[string]any, len(section)+8)
	for k, v := range section {
		out[k] = v
	}
	return out
}
