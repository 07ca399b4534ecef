package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentGet(t *testing.T) {
	doc := Document{
		"global_webhook": map[string]any{
			"digest": map[string]any{"type": "interval"},
		},
		"flat": "value",
	}

	assert.Equal(t, "interval", doc.Get("global_webhook.digest.type", "fallback"))
	assert.Equal(t, "value", doc.Get("flat", "fallback"))
	assert.Equal(t, "fallback", doc.Get("global_webhook.missing", "fallback"))
	assert.Equal(t, "fallback", doc.Get("flat.deeper", "fallback"), "descending through a scalar yields the default")
	assert.Equal(t, "fallback", doc.Get("", "fallback"))
}

func TestDocumentGetThroughNestedDocument(t *testing.T) {
	doc := Document{
		"outer": Document{"inner": 7},
	}
	assert.Equal(t, 7, doc.Get("outer.inner", 0))
}

func TestDocumentSection(t *testing.T) {
	doc := Document{
		"ui":     map[string]any{"label": "x"},
		"scalar": 42,
	}

	assert.Equal(t, "x", doc.Section("ui")["label"])
	assert.NotNil(t, doc.Section("missing"), "missing section yields an empty map, never nil")
	assert.Empty(t, doc.Section("scalar"))
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := Document{
		"section": map[string]any{"list": []any{map[string]any{"k": "v"}}},
		"ints":    []int{1, 2, 3},
	}

	clone := doc.Clone()
	clone["section"].(map[string]any)["list"].([]any)[0].(map[string]any)["k"] = "tampered"
	clone["ints"].([]int)[0] = 99

	assert.Equal(t, "v", doc["section"].(map[string]any)["list"].([]any)[0].(map[string]any)["k"])
	assert.Equal(t, 1, doc["ints"].([]int)[0])

	var nilDoc Document
	assert.Nil(t, nilDoc.Clone())
}

func TestProjectRefKey(t *testing.T) {
	assert.Equal(t, "plugin:my-plugin", ProjectRef{Type: "plugin", Slug: "my-plugin"}.Key())
	assert.Equal(t, "", ProjectRef{Type: "plugin"}.Key(), "missing slug degrades the key")
	assert.Equal(t, "", ProjectRef{Slug: "my-plugin"}.Key(), "missing type degrades the key")
	assert.Equal(t, "", ProjectRef{}.Key())
}

func TestParseSurveillance(t *testing.T) {
	doc := Document{
		"surveillance": map[string]any{
			"enabled":                true,
			"interval":               float64(15), // JSON round trips produce float64
			"max_projects_per_check": 5,
			"request_timeout":        30,
		},
	}

	cfg := ParseSurveillance(doc)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 15, cfg.Interval)
	assert.Equal(t, 5, cfg.MaxProjectsPerCheck)
	assert.Equal(t, 30, cfg.RequestTimeout)
}

func TestParseGlobalWebhook(t *testing.T) {
	doc := Document{
		"global_webhook": map[string]any{
			"enabled":     true,
			"webhook_url": "https://hooks.example.com/x",
			"types":       []any{"milestone", "new_strings"},
			"milestones":  []any{float64(50), float64(80)},
			"scopes": map[string]any{
				"locales": []any{"de_de"},
				"projects": []any{
					map[string]any{"type": "plugin", "slug": "my-plugin"},
					map[string]any{"type": "", "slug": "orphan"},
				},
			},
		},
	}

	cfg := ParseGlobalWebhook(doc)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"milestone", "new_strings"}, cfg.Types)
	assert.Equal(t, []int{50, 80}, cfg.Milestones)
	assert.Equal(t, []string{"de_de"}, cfg.Scopes.Locales)

	require.Len(t, cfg.Scopes.Projects, 1, "a project reference with an empty key is dropped")
	assert.Equal(t, "plugin:my-plugin", cfg.Scopes.Projects[0].Key())
}

func TestParseLocaleOverrides(t *testing.T) {
	doc := Document{
		"locales": map[string]any{
			"de_de": map[string]any{
				"override": true,
				"webhook":  map[string]any{"enabled": true, "webhook_url": "https://hooks.example.com/de"},
			},
			"opaque": "not a map",
		},
	}

	overrides := ParseLocaleOverrides(doc)
	require.Contains(t, overrides, "de_de")
	assert.True(t, overrides["de_de"].Override)
	assert.True(t, overrides["de_de"].Webhook.Enabled)
	assert.NotContains(t, overrides, "opaque", "non-map entries are skipped by the typed view")
}

func TestParseDigestMissingSection(t *testing.T) {
	cfg := ParseNotificationDefaults(Document{})
	assert.Equal(t, "interval", cfg.Digest.Type, "a missing digest block defaults to the interval type")
}
