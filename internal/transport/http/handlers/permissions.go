package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
	"github.com/carlos18bp/gym-project-sub003/internal/transport/http/middleware"
	"github.com/carlos18bp/gym-project-sub003/internal/usecase"
)

// Toggle actions accepted by PermissionHandler.Toggle.
const (
	toggleUserVisibility = "user_visibility"
	toggleUserUsability  = "user_usability"
	toggleRoleVisibility = "role_visibility"
	toggleRoleUsability  = "role_usability"
	togglePublic         = "public"
)

// PermissionHandler edits per-document permission sets. Toggles are stateless:
// the client sends the working set with each command and receives the updated
// set back, so nothing is persisted until an explicit save.
type PermissionHandler struct {
	permissions *usecase.PermissionService
}

func NewPermissionHandler(permissions *usecase.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissions: permissions}
}

func (h *PermissionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/:id/permissions", middleware.RequireLawyer(), h.Get)
	r.POST("/:id/permissions/toggle", middleware.RequireLawyer(), h.Toggle)
	r.POST("/:id/permissions", middleware.RequireLawyer(), h.Create)
	r.PUT("/:id/permissions", middleware.RequireLawyer(), h.Update)
}

// Get loads the stored permission payload and materializes it against the
// current roster.
func (h *PermissionHandler) Get(c *gin.Context) {
	set, err := h.permissions.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
		}, http.StatusInternalServerError, "failed to load permissions")
		return
	}

	c.JSON(http.StatusOK, newPermissionSetPayload(set))
}

func (h *PermissionHandler) Toggle(c *gin.Context) {
	var req PermissionToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request format"))
		return
	}

	set := toPermissionSet(req.Set)
	ctx := c.Request.Context()

	var err error
	switch req.Action {
	case toggleUserVisibility:
		err = h.permissions.ToggleUserVisibility(ctx, set, req.UserID)
	case toggleUserUsability:
		err = h.permissions.ToggleUserUsability(ctx, set, req.UserID)
	case toggleRoleVisibility:
		err = h.permissions.ToggleRoleVisibility(ctx, set, domain.Role(req.Role))
	case toggleRoleUsability:
		err = h.permissions.ToggleRoleUsability(ctx, set, domain.Role(req.Role))
	case togglePublic:
		h.permissions.TogglePublic(ctx, set)
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown toggle action"))
		return
	}

	resp := PermissionToggleResponse{Set: newPermissionSetPayload(set)}
	if err != nil {
		// Precondition failures leave the set untouched and surface as a
		// warning, not a request failure.
		switch {
		case errors.Is(err, domain.ErrVisibilityRequired),
			errors.Is(err, domain.ErrRoleVisibilityRequired),
			errors.Is(err, usecase.ErrClientNotFound):
			resp.Warning = err.Error()
		default:
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to apply toggle"))
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Create persists a fresh document's permissions with the compact
// serialization.
func (h *PermissionHandler) Create(c *gin.Context) {
	h.save(c, h.permissions.SaveNew)
}

// Update persists an edited set with the expanded serialization.
func (h *PermissionHandler) Update(c *gin.Context) {
	h.save(c, h.permissions.SaveExisting)
}

func (h *PermissionHandler) save(c *gin.Context, persist func(ctx context.Context, documentID string, set *domain.PermissionSet, actor domain.User) error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	var req PermissionSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request format"))
		return
	}

	set := toPermissionSet(req.Set)
	if err := persist(c.Request.Context(), c.Param("id"), set, actor); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
		}, http.StatusInternalServerError, "failed to save permissions")
		return
	}

	c.JSON(http.StatusOK, newPermissionSetPayload(set))
}
