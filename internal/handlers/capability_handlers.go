package handlers

import (
	"context"
	"net/http"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/capability"
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/utils"
)

// CapabilityResolverInterface defines the permission resolution the
// handlers need. *capability.Resolver satisfies it.
type CapabilityResolverInterface interface {
	// ResolveName evaluates a permission by wire name.
	ResolveName(ctx context.Context, actor *auth.Actor, name string, requested bool, locale string, project models.ProjectRef) (bool, error)
}

// CapabilityHandler handles permission-check routes
type CapabilityHandler struct {
	resolver CapabilityResolverInterface
}

// NewCapabilityHandler creates a new CapabilityHandler
func NewCapabilityHandler(resolver CapabilityResolverInterface) *CapabilityHandler {
	return &CapabilityHandler{resolver: resolver}
}

// CapabilityCheckRequest is the body of a permission-check call.
type CapabilityCheckRequest struct {
	// Permission is the wire name of the permission to evaluate.
	Permission string `json:"permission" validate:"required"`

	// Locale is the locale scope of the request.
	Locale string `json:"locale"`

	// Project is the optional project scope of the request.
	Project models.ProjectRef `json:"project"`

	// Requested is the caller's default decision, passed through for
	// permission names the resolver does not recognize.
	Requested bool `json:"requested"`
}

// CheckCapability evaluates a scoped permission for the authenticated actor.
func (h *CapabilityHandler) CheckCapability(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	var req CapabilityCheckRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	granted, err := h.resolver.ResolveName(r.Context(), actor, req.Permission, req.Requested, req.Locale, req.Project)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]any{
		"permission": req.Permission,
		"granted":    granted,
	})
}

// GetBaseCapabilities returns the actor's effective base capability set,
// with the administrator broadening step applied.
func (h *CapabilityHandler) GetBaseCapabilities(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromContext(r.Context())
	if err != nil {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	checked := make(map[string]bool, len(capability.BaseCapabilities))
	for _, name := range capability.BaseCapabilities {
		checked[name] = actor.HasCapability(name)
	}

	utils.JSON(w, constants.StatusOK, capability.GrantBase(actor, checked))
}
