package handlers

import (
	"net/http"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/settings"
	"github.com/localewatch/localewatch/internal/utils"
)

// SettingsHandler handles settings-related routes
type SettingsHandler struct {
	engine SettingsEngineInterface
	nonces NonceIssuer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(engine SettingsEngineInterface, nonces NonceIssuer) *SettingsHandler {
	return &SettingsHandler{
		engine: engine,
		nonces: nonces,
	}
}

// GetSettings returns the full settings document
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	doc, err := h.engine.All(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, doc)
}

// GetSetting returns a single value addressed by the dotted path query
// parameter, falling back to the optional default parameter.
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get(constants.QueryParamPath)
	if path == "" {
		utils.BadRequest(w, "path query parameter is required", nil)
		return
	}

	var def any
	if raw := r.URL.Query().Get(constants.QueryParamDefault); raw != "" {
		def = raw
	}

	value, err := h.engine.Get(r.Context(), path, def)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]any{
		"path":  path,
		"value": value,
	})
}

// UpdateSettings replaces the settings document through the guarded update
// pipeline. The raw body is decoded without field filtering: unknown keys
// are part of the document contract and must survive the round trip.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	var raw models.Document
	if err := utils.DecodeJSON(r, &raw); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	doc, err := h.engine.Update(r.Context(), raw, settings.UpdateOptions{
		Actor:      actor,
		Token:      r.Header.Get(constants.HeaderXNonce),
		ClientAddr: clientAddr(r),
	})
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, doc)
}

// ClearSettingsCache drops the read cache so the next read hits storage.
func (h *SettingsHandler) ClearSettingsCache(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCache()
	utils.NoContent(w)
}

// GetUpdateNonce issues an anti-forgery token for the settings update
// action. The client sends it back in the nonce header on update calls.
func (h *SettingsHandler) GetUpdateNonce(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.ActorFromContext(r.Context()); err != nil {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]string{
		"action": constants.ActionUpdateSettings,
		"nonce":  h.nonces.Create(constants.ActionUpdateSettings),
	})
}

// clientAddr returns the request's remote address without the port.
func clientAddr(r *http.Request) string {
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
