package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localewatch/localewatch/internal/utils"
)

// mockTeamRepo records assignment calls and serves a canned manager list.
type mockTeamRepo struct {
	addCalls    []string
	removeCalls []string
	managers    []int64
	err         error
}

func (m *mockTeamRepo) IsLocaleManager(context.Context, int64, string) (bool, error) {
	return false, nil
}

func (m *mockTeamRepo) IsGeneralEditor(context.Context, int64, string) (bool, error) {
	return false, nil
}

func (m *mockTeamRepo) IsProjectEditor(context.Context, int64, string, string) (bool, error) {
	return false, nil
}

func (m *mockTeamRepo) AddLocaleManager(_ context.Context, userID int64, locale string) error {
	m.addCalls = append(m.addCalls, "manager")
	return m.err
}

func (m *mockTeamRepo) AddGeneralEditor(_ context.Context, userID int64, locale string) error {
	m.addCalls = append(m.addCalls, "general")
	return m.err
}

func (m *mockTeamRepo) AddProjectEditor(_ context.Context, userID int64, locale, projectKey string) error {
	m.addCalls = append(m.addCalls, "project:"+projectKey)
	return m.err
}

func (m *mockTeamRepo) RemoveLocaleManager(_ context.Context, userID int64, locale string) error {
	m.removeCalls = append(m.removeCalls, "manager")
	return m.err
}

func (m *mockTeamRepo) RemoveGeneralEditor(_ context.Context, userID int64, locale string) error {
	m.removeCalls = append(m.removeCalls, "general")
	return m.err
}

func (m *mockTeamRepo) RemoveProjectEditor(_ context.Context, userID int64, locale, projectKey string) error {
	m.removeCalls = append(m.removeCalls, "project:"+projectKey)
	return m.err
}

func (m *mockTeamRepo) LocaleManagers(context.Context, string) ([]int64, error) {
	return m.managers, m.err
}

func TestAddAssignment(t *testing.T) {
	t.Run("locale manager", func(t *testing.T) {
		repo := &mockTeamRepo{}
		handler := NewTeamHandler(repo)

		payload := []byte(`{"user_id":7,"role":"locale_manager","locale":"DE_DE"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.AddAssignment(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"manager"}, repo.addCalls)

		var body map[string]any
		decodeBody(t, rec, &body)
		assert.Equal(t, "de_de", body["locale"], "locale is normalized before storage")
	})

	t.Run("project editor uses the composite key", func(t *testing.T) {
		repo := &mockTeamRepo{}
		handler := NewTeamHandler(repo)

		payload := []byte(`{"user_id":7,"role":"project_editor","locale":"de_de","project":{"type":"Plugin","slug":"My-Plugin"}}`)
		req := httptest.NewRequest(http.MethodPost, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.AddAssignment(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"project:plugin:my-plugin"}, repo.addCalls)
	})

	t.Run("project editor without a project is rejected", func(t *testing.T) {
		repo := &mockTeamRepo{}
		handler := NewTeamHandler(repo)

		payload := []byte(`{"user_id":7,"role":"project_editor","locale":"de_de"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.AddAssignment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, repo.addCalls)
	})

	t.Run("unknown role fails validation", func(t *testing.T) {
		handler := NewTeamHandler(&mockTeamRepo{})

		payload := []byte(`{"user_id":7,"role":"superuser","locale":"de_de"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.AddAssignment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsalvageable locale is rejected", func(t *testing.T) {
		handler := NewTeamHandler(&mockTeamRepo{})

		payload := []byte(`{"user_id":7,"role":"locale_manager","locale":"!!!"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.AddAssignment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRemoveAssignment(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		repo := &mockTeamRepo{}
		handler := NewTeamHandler(repo)

		payload := []byte(`{"user_id":7,"role":"general_editor","locale":"de_de"}`)
		req := httptest.NewRequest(http.MethodDelete, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.RemoveAssignment(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"general"}, repo.removeCalls)
	})

	t.Run("missing assignment surfaces not found", func(t *testing.T) {
		repo := &mockTeamRepo{err: utils.NewNotFoundError("team assignment", "7/de_de")}
		handler := NewTeamHandler(repo)

		payload := []byte(`{"user_id":7,"role":"locale_manager","locale":"de_de"}`)
		req := httptest.NewRequest(http.MethodDelete, "/api/teams/assignments", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.RemoveAssignment(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListLocaleManagers(t *testing.T) {
	t.Run("listed", func(t *testing.T) {
		repo := &mockTeamRepo{managers: []int64{3, 7}}
		handler := NewTeamHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/teams/locale-managers?locale=de_de", nil)
		rec := httptest.NewRecorder()
		handler.ListLocaleManagers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Locale   string  `json:"locale"`
			Managers []int64 `json:"managers"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "de_de", body.Locale)
		assert.Equal(t, []int64{3, 7}, body.Managers)
	})

	t.Run("empty list serializes as a list, not null", func(t *testing.T) {
		handler := NewTeamHandler(&mockTeamRepo{})

		req := httptest.NewRequest(http.MethodGet, "/api/teams/locale-managers?locale=de_de", nil)
		rec := httptest.NewRecorder()
		handler.ListLocaleManagers(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"managers":[]`)
	})

	t.Run("locale parameter is required", func(t *testing.T) {
		handler := NewTeamHandler(&mockTeamRepo{})

		req := httptest.NewRequest(http.MethodGet, "/api/teams/locale-managers", nil)
		rec := httptest.NewRecorder()
		handler.ListLocaleManagers(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
