package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
)

// mockResolver grants a fixed set of permission names and passes unknown
// names through, mirroring the real resolver's contract.
type mockResolver struct {
	grants map[string]bool

	lastLocale  string
	lastProject models.ProjectRef
}

func (m *mockResolver) ResolveName(_ context.Context, _ *auth.Actor, name string, requested bool, locale string, project models.ProjectRef) (bool, error) {
	m.lastLocale = locale
	m.lastProject = project
	if granted, known := m.grants[name]; known {
		return granted, nil
	}
	return requested, nil
}

func TestCheckCapability(t *testing.T) {
	actor := &auth.Actor{ID: 7}

	t.Run("known permission is evaluated", func(t *testing.T) {
		resolver := &mockResolver{grants: map[string]bool{constants.PermManageLocale: true}}
		handler := NewCapabilityHandler(resolver)

		payload := []byte(`{"permission":"localewatch_manage_locale","locale":"de_de"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/capabilities/check", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.CheckCapability(rec, authed(req, actor))

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		decodeBody(t, rec, &body)
		assert.Equal(t, constants.PermManageLocale, body["permission"])
		assert.Equal(t, true, body["granted"])
		assert.Equal(t, "de_de", resolver.lastLocale)
	})

	t.Run("project scope reaches the resolver", func(t *testing.T) {
		resolver := &mockResolver{grants: map[string]bool{}}
		handler := NewCapabilityHandler(resolver)

		payload := []byte(`{"permission":"localewatch_manage_project_locale","locale":"de_de","project":{"type":"plugin","slug":"my-plugin"}}`)
		req := httptest.NewRequest(http.MethodPost, "/api/capabilities/check", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.CheckCapability(rec, authed(req, actor))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "plugin:my-plugin", resolver.lastProject.Key())
	})

	t.Run("unknown permission echoes the requested decision", func(t *testing.T) {
		handler := NewCapabilityHandler(&mockResolver{grants: map[string]bool{}})

		payload := []byte(`{"permission":"something_else","requested":true}`)
		req := httptest.NewRequest(http.MethodPost, "/api/capabilities/check", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.CheckCapability(rec, authed(req, actor))

		var body map[string]any
		decodeBody(t, rec, &body)
		assert.Equal(t, true, body["granted"])
	})

	t.Run("permission name is required", func(t *testing.T) {
		handler := NewCapabilityHandler(&mockResolver{grants: map[string]bool{}})

		req := httptest.NewRequest(http.MethodPost, "/api/capabilities/check", bytes.NewReader([]byte(`{"locale":"de_de"}`)))
		rec := httptest.NewRecorder()
		handler.CheckCapability(rec, authed(req, actor))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler := NewCapabilityHandler(&mockResolver{grants: map[string]bool{}})

		req := httptest.NewRequest(http.MethodPost, "/api/capabilities/check", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		handler.CheckCapability(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetBaseCapabilities(t *testing.T) {
	handler := NewCapabilityHandler(&mockResolver{grants: map[string]bool{}})

	t.Run("administrator gets every base capability", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/capabilities/base", nil)
		rec := httptest.NewRecorder()
		handler.GetBaseCapabilities(rec, authed(req, &auth.Actor{ID: 1, Administrator: true}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]bool
		decodeBody(t, rec, &body)
		assert.True(t, body[constants.CapManageSettings])
		assert.True(t, body[constants.CapManageTeams])
	})

	t.Run("regular actor gets only their grants", func(t *testing.T) {
		actor := &auth.Actor{ID: 7, Capabilities: []string{constants.CapViewDashboard}}
		req := httptest.NewRequest(http.MethodGet, "/api/capabilities/base", nil)
		rec := httptest.NewRecorder()
		handler.GetBaseCapabilities(rec, authed(req, actor))

		var body map[string]bool
		decodeBody(t, rec, &body)
		assert.True(t, body[constants.CapViewDashboard])
		assert.False(t, body[constants.CapManageSettings])
	})
}
