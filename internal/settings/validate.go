// Package settings implements the configuration engine: loading, migrating,
// sanitizing, validating and persisting the settings document, as well as the
// guarded update pipeline that ties those steps together.
package settings

import (
	"fmt"

	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/utils"
)

// ruleResult accumulates cross-field validation failures keyed by field path.
// Every rule is checked independently; the accumulated failures are returned
// together so the caller can surface all of them at once.
type ruleResult struct {
	codes map[string]string
}

func newRuleResult() *ruleResult {
	return &ruleResult{codes: make(map[string]string)}
}

// fail records a validation code against a field path. The first code per
// field wins.
func (r *ruleResult) fail(field, code string) {
	if _, exists := r.codes[field]; !exists {
		r.codes[field] = code
	}
}

// err converts the result into a validation error, or nil when every rule passed.
func (r *ruleResult) err() *utils.AppError {
	if len(r.codes) == 0 {
		return nil
	}
	return utils.NewValidationErrorWithDetails("settings validation failed", r.codes)
}

// Validate applies the cross-field business rules to a sanitized document.
// Rules relate fields to each other (an enabled feature demands its
// supporting fields) and so cannot run during per-field sanitization; each
// rule is checked independently and all failures accumulate.
func Validate(doc models.Document) *utils.AppError {
	result := newRuleResult()

	validateSurveillance(doc, result)
	validateGlobalWebhook(doc, result)
	validateMilestones(doc, result)
	validateLocaleWebhooks(doc, result)

	return result.err()
}

// validateSurveillance requires a usable polling schedule while polling is
// enabled. A disabled feature tolerates any stored interval.
func validateSurveillance(doc models.Document, result *ruleResult) {
	cfg := models.ParseSurveillance(doc)
	if !cfg.Enabled {
		return
	}
	if cfg.Interval < constants.MinSurveillanceInterval {
		result.fail("surveillance.interval", constants.CodeSurveillanceInterval)
	}
	if cfg.MaxProjectsPerCheck < constants.MinProjectsPerCheck {
		result.fail("surveillance.max_projects_per_check", constants.CodeSurveillanceMaxProjects)
	}
}

// validateGlobalWebhook requires a destination and at least one subscribed
// event type while the site-wide webhook is enabled, and a sane digest
// schedule while an interval digest is active.
func validateGlobalWebhook(doc models.Document, result *ruleResult) {
	cfg := models.ParseGlobalWebhook(doc)
	if cfg.Enabled {
		if cfg.WebhookURL == "" {
			result.fail("global_webhook.webhook_url", constants.CodeGlobalWebhookURLMissing)
		}
		if len(cfg.Types) == 0 {
			result.fail("global_webhook.types", constants.CodeGlobalWebhookTypesMissing)
		}
	}
	if cfg.Digest.Enabled && cfg.Digest.Type == constants.DigestTypeInterval {
		if cfg.Digest.IntervalMinutes < constants.MinDigestIntervalMinutes {
			result.fail("global_webhook.digest.interval_minutes", constants.CodeDigestInterval)
		}
	}
}

// validateMilestones rejects duplicate milestone values. Documents produced
// by the sanitizer are already deduplicated; this rule guards documents
// validated directly.
func validateMilestones(doc models.Document, result *ruleResult) {
	defaults := models.ParseNotificationDefaults(doc)
	seen := make(map[int]bool, len(defaults.Milestones))
	for _, m := range defaults.Milestones {
		if seen[m] {
			result.fail("notification_defaults.milestones", constants.CodeMilestonesDuplicate)
			return
		}
		seen[m] = true
	}
}

// validateLocaleWebhooks requires a destination for every enabled per-locale
// webhook, recording one failure per offending locale.
func validateLocaleWebhooks(doc models.Document, result *ruleResult) {
	for code, override := range models.ParseLocaleOverrides(doc) {
		if override.Webhook.Enabled && override.Webhook.WebhookURL == "" {
			field := fmt.Sprintf("locales.%s.webhook.webhook_url", code)
			result.fail(field, constants.CodeLocaleWebhookURLMissing)
		}
	}
}
