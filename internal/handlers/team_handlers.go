package handlers

import (
	"net/http"

	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/repository"
	"github.com/localewatch/localewatch/internal/sanitize"
	"github.com/localewatch/localewatch/internal/utils"
)

// Team roles accepted by the assignment endpoints.
const (
	RoleLocaleManager = "locale_manager"
	RoleGeneralEditor = "general_editor"
	RoleProjectEditor = "project_editor"
)

// TeamHandler handles team-assignment routes
type TeamHandler struct {
	teams repository.TeamRepository
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teams repository.TeamRepository) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// TeamAssignmentRequest is the body of an assignment or revocation call.
type TeamAssignmentRequest struct {
	// UserID is the actor being assigned.
	UserID int64 `json:"user_id" validate:"required,gt=0"`

	// Role is one of locale_manager, general_editor or project_editor.
	Role string `json:"role" validate:"required,oneof=locale_manager general_editor project_editor"`

	// Locale is the locale the assignment applies to.
	Locale string `json:"locale" validate:"required"`

	// Project is the project scope, required for project_editor assignments.
	Project models.ProjectRef `json:"project"`
}

// AddAssignment grants a team membership.
func (h *TeamHandler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	req, locale, projectKey, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}

	var err error
	switch req.Role {
	case RoleLocaleManager:
		err = h.teams.AddLocaleManager(r.Context(), req.UserID, locale)
	case RoleGeneralEditor:
		err = h.teams.AddGeneralEditor(r.Context(), req.UserID, locale)
	case RoleProjectEditor:
		err = h.teams.AddProjectEditor(r.Context(), req.UserID, locale, projectKey)
	}
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, map[string]any{
		"user_id": req.UserID,
		"role":    req.Role,
		"locale":  locale,
	})
}

// RemoveAssignment revokes a team membership.
func (h *TeamHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	req, locale, projectKey, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}

	var err error
	switch req.Role {
	case RoleLocaleManager:
		err = h.teams.RemoveLocaleManager(r.Context(), req.UserID, locale)
	case RoleGeneralEditor:
		err = h.teams.RemoveGeneralEditor(r.Context(), req.UserID, locale)
	case RoleProjectEditor:
		err = h.teams.RemoveProjectEditor(r.Context(), req.UserID, locale, projectKey)
	}
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// ListLocaleManagers lists the actors managing a locale.
func (h *TeamHandler) ListLocaleManagers(w http.ResponseWriter, r *http.Request) {
	locale := sanitize.Locale(r.URL.Query().Get("locale"))
	if locale == "" {
		utils.BadRequest(w, "locale query parameter is required", nil)
		return
	}

	managers, err := h.teams.LocaleManagers(r.Context(), locale)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	if managers == nil {
		managers = []int64{}
	}

	utils.JSON(w, constants.StatusOK, map[string]any{
		"locale":   locale,
		"managers": managers,
	})
}

// decodeAssignment decodes and normalizes an assignment request. The locale
// is run through the same sanitizer the capability resolver uses so that
// stored assignments and permission lookups agree on key form.
func (h *TeamHandler) decodeAssignment(w http.ResponseWriter, r *http.Request) (*TeamAssignmentRequest, string, string, bool) {
	var req TeamAssignmentRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return nil, "", "", false
	}

	locale := sanitize.Locale(req.Locale)
	if locale == "" {
		utils.BadRequest(w, "locale is invalid", nil)
		return nil, "", "", false
	}

	projectKey := ""
	if req.Role == RoleProjectEditor {
		projectKey = models.ProjectRef{
			Type: sanitize.Slug(req.Project.Type),
			Slug: sanitize.Slug(req.Project.Slug),
		}.Key()
		if projectKey == "" {
			utils.BadRequest(w, "project type and slug are required for project_editor assignments", nil)
			return nil, "", "", false
		}
	}

	return &req, locale, projectKey, true
}
