package settings

import (
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
)

// Defaults returns a fresh settings document holding every documented
// default. Used on first load when no document has been persisted yet; it is
// deliberately schema-version zero so the cold-load path runs the full
// migration chain over it.
func Defaults() models.Document {
	return models.Document{
		constants.SectionUI: map[string]any{
			constants.FieldLabel: "LocaleWatch",
			constants.FieldIcon:  constants.IconGlobe,
		},
		constants.SectionSurveillance: map[string]any{
			constants.FieldEnabled:        false,
			constants.FieldInterval:       constants.DefaultSurveillanceInterval,
			constants.FieldAutoStart:      false,
			constants.FieldMaxProjects:    constants.DefaultProjectsPerCheck,
			constants.FieldRequestTimeout: constants.DefaultRequestTimeout,
		},
		constants.SectionNotificationDefaults: map[string]any{
			constants.FieldStringsThreshold: 0,
			constants.FieldMilestones:       []int{50, 80, 100},
			constants.FieldMode:             constants.ModeImmediate,
			constants.FieldDigest:           defaultDigest(),
		},
		constants.SectionGlobalWebhook: map[string]any{
			constants.FieldEnabled:    false,
			constants.FieldWebhookURL: "",
			constants.FieldTypes:      []string{},
			constants.FieldThreshold:  0,
			constants.FieldMilestones: []int{},
			constants.FieldMode:       constants.ModeImmediate,
			constants.FieldDigest:     defaultDigest(),
			constants.FieldScopes: map[string]any{
				constants.FieldScopeLocales:  []string{},
				constants.FieldScopeProjects: []any{},
			},
		},
		constants.SectionLocales: map[string]any{},
	}
}

func defaultDigest() map[string]any {
	return map[string]any{
		constants.FieldDigestType:      constants.DigestTypeInterval,
		constants.FieldIntervalMinutes: constants.DefaultDigestIntervalMinutes,
		constants.FieldFixedTime:       constants.DefaultDigestFixedTime,
		constants.FieldEnabled:         false,
	}
}
