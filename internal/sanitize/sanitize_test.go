package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localewatch/localewatch/internal/models"
)

func TestDocumentPreservesUnknownKeys(t *testing.T) {
	raw := models.Document{
		"custom_extension": map[string]any{"flag": true},
		"ui": map[string]any{
			"label":      "My Translations",
			"icon":       "flag",
			"theme_hint": "dark",
		},
		"locales": map[string]any{
			"de_de": map[string]any{
				"override":    true,
				"reviewer_id": 99,
				"webhook":     map[string]any{"enabled": false},
			},
		},
	}

	out, errs := Document(raw)
	require.True(t, errs.Empty(), "details: %v", errs.Details())

	assert.Equal(t, map[string]any{"flag": true}, out["custom_extension"], "unknown top-level key survives")

	ui, ok := out["ui"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dark", ui["theme_hint"], "unknown key inside a known section survives")
	assert.Equal(t, "My Translations", ui["label"])
	assert.Equal(t, "flag", ui["icon"])

	locales, ok := out["locales"].(map[string]any)
	require.True(t, ok)
	entry, ok := locales["de_de"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 99, entry["reviewer_id"], "unknown key inside a locale entry survives")
	assert.Equal(t, true, entry["override"])
}

func TestDocumentAccumulatesAllErrors(t *testing.T) {
	raw := models.Document{
		"surveillance": map[string]any{
			"request_timeout":        1000,
			"max_projects_per_check": -1,
		},
		"notification_defaults": map[string]any{
			"new_strings_threshold": -3,
		},
		"global_webhook": map[string]any{
			"webhook_url": "not a url",
		},
	}

	_, errs := Document(raw)
	require.False(t, errs.Empty())

	assert.Equal(t, []string{
		"global_webhook.webhook_url",
		"notification_defaults.new_strings_threshold",
		"surveillance.max_projects_per_check",
		"surveillance.request_timeout",
	}, errs.Fields(), "every failing field reported in one pass")

	err := errs.Err()
	require.NotNil(t, err)
	assert.Len(t, err.Details, 4)
}

func TestDocumentAppliesDefaults(t *testing.T) {
	out, errs := Document(models.Document{})
	require.True(t, errs.Empty())

	surveillance, ok := out["surveillance"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, surveillance["enabled"])
	assert.Equal(t, 30, surveillance["request_timeout"])

	defaults, ok := out["notification_defaults"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "immediate", defaults["mode"])
	assert.Equal(t, []int{}, defaults["milestones"])

	digest, ok := defaults["digest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "interval", digest["type"])
	assert.Equal(t, "09:00", digest["fixed_time"])
}

func TestDocumentNormalizesLocaleKeys(t *testing.T) {
	raw := models.Document{
		"locales": map[string]any{
			"DE_DE":  map[string]any{"override": true},
			"!!!":    map[string]any{"override": true},
			"fr_fr#": "opaque",
		},
	}

	out, errs := Document(raw)
	require.True(t, errs.Empty())

	locales, ok := out["locales"].(map[string]any)
	require.True(t, ok)

	assert.Contains(t, locales, "de_de", "locale keys are normalized")
	assert.NotContains(t, locales, "DE_DE")
	assert.Len(t, locales, 2, "entries with unsalvageable codes are dropped")
	assert.Equal(t, "opaque", locales["fr_fr"], "non-map entries pass through raw")
}

func TestDocumentPerLocaleErrorFields(t *testing.T) {
	raw := models.Document{
		"locales": map[string]any{
			"de_de": map[string]any{
				"webhook": map[string]any{"webhook_url": "nope"},
			},
		},
	}

	_, errs := Document(raw)
	require.False(t, errs.Empty())
	assert.Contains(t, errs.Details(), "locales.de_de.webhook.webhook_url")
}

func TestDocumentWebhookScopes(t *testing.T) {
	raw := models.Document{
		"global_webhook": map[string]any{
			"scopes": map[string]any{
				"locales": []any{"DE_DE", "de_de", ""},
				"projects": []any{
					map[string]any{"type": "Plugin", "slug": "My-Plugin"},
					map[string]any{"type": "", "slug": "orphan"},
					map[string]any{"type": "theme"},
					"not a map",
				},
			},
		},
	}

	out, errs := Document(raw)
	require.True(t, errs.Empty())

	webhook := out["global_webhook"].(map[string]any)
	scopes := webhook["scopes"].(map[string]any)

	assert.Equal(t, []string{"de_de"}, scopes["locales"])
	assert.Equal(t, []any{
		map[string]any{"type": "plugin", "slug": "my-plugin"},
	}, scopes["projects"], "entries missing a type or slug are dropped")
}

func TestDocumentCiphertextRoundTrip(t *testing.T) {
	blob := strings.Repeat("Zx8+/", 13)
	raw := models.Document{
		"global_webhook": map[string]any{"webhook_url": blob},
	}

	out, errs := Document(raw)
	require.True(t, errs.Empty())

	webhook := out["global_webhook"].(map[string]any)
	assert.Equal(t, blob, webhook["webhook_url"], "encrypted value survives byte-for-byte")
}

func TestDocumentLegacyKeysOnlyWhenPresent(t *testing.T) {
	out, errs := Document(models.Document{})
	require.True(t, errs.Empty())
	assert.NotContains(t, out, "legacy_webhook_url")
	assert.NotContains(t, out, "locales_slack")

	raw := models.Document{
		"legacy_webhook_url": "https://hooks.example.com/legacy",
		"locales_slack": map[string]any{
			"DE_DE": "https://hooks.example.com/de",
		},
	}
	out, errs = Document(raw)
	require.True(t, errs.Empty())
	assert.Equal(t, "https://hooks.example.com/legacy", out["legacy_webhook_url"])

	slack, ok := out["locales_slack"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://hooks.example.com/de", slack["de_de"])
}

func TestDocumentDoesNotMutateInput(t *testing.T) {
	raw := models.Document{
		"surveillance": map[string]any{"interval": "45"},
	}

	out, errs := Document(raw)
	require.True(t, errs.Empty())

	assert.Equal(t, "45", raw["surveillance"].(map[string]any)["interval"], "input left untouched")
	assert.Equal(t, 45, out["surveillance"].(map[string]any)["interval"])
}

func TestFieldErrorsFirstMessageWins(t *testing.T) {
	errs := NewFieldErrors()
	errs.Add("f", "first")
	errs.Add("f", "second")
	assert.Equal(t, "first", errs.Details()["f"])

	assert.Nil(t, NewFieldErrors().Err())
}
