package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carlos18bp/gym-project-sub003/internal/core/domain"
	"github.com/carlos18bp/gym-project-sub003/internal/core/port"
	"github.com/carlos18bp/gym-project-sub003/internal/repository"
	"github.com/carlos18bp/gym-project-sub003/internal/transport/http/middleware"
	"github.com/carlos18bp/gym-project-sub003/internal/usecase"
)

// DocumentHandler serves document reads, lifecycle transitions, and per-card
// action resolution.
type DocumentHandler struct {
	documents *usecase.DocumentService
}

func NewDocumentHandler(documents *usecase.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.GET("/:id/actions", h.Actions)
	r.POST("/:id/publish", middleware.RequireLawyer(), h.Publish)
	r.POST("/:id/draft", middleware.RequireLawyer(), h.RevertToDraft)
	r.POST("/:id/expire", middleware.RequireLawyer(), h.Expire)
}

func (h *DocumentHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	filter := port.DocumentFilter{
		State:      domain.DocumentState(strings.TrimSpace(c.Query("state"))),
		CreatedBy:  strings.TrimSpace(c.Query("created_by")),
		AssignedTo: strings.TrimSpace(c.Query("assigned_to")),
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	docs, err := h.documents.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list documents"))
		return
	}

	payloads := make([]DocumentPayload, 0, len(docs))
	for _, doc := range docs {
		payloads = append(payloads, newDocumentPayload(doc, actor))
	}

	c.JSON(http.StatusOK, DocumentListResponse{Documents: payloads, Total: len(payloads)})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	doc, err := h.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
		}, http.StatusInternalServerError, "failed to load document")
		return
	}

	c.JSON(http.StatusOK, newDocumentPayload(*doc, actor))
}

// Actions resolves the ordered action list for one card. Unknown card types
// yield an empty list rather than an error.
func (h *DocumentHandler) Actions(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	card := domain.CardType(c.DefaultQuery("card", string(domain.CardClient)))
	listCtx := domain.ListContext(c.DefaultQuery("context", string(domain.ContextList)))

	actions, err := h.documents.Actions(c.Request.Context(), c.Param("id"), card, listCtx, actor)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
		}, http.StatusInternalServerError, "failed to resolve actions")
		return
	}

	c.JSON(http.StatusOK, ActionListResponse{Actions: newActionPayloads(actions)})
}

func (h *DocumentHandler) Publish(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	doc, err := h.documents.Publish(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
			{Err: usecase.ErrPermissionDenied, Status: http.StatusForbidden, Message: "insufficient permissions"},
			{Err: usecase.ErrInvalidTransition, Status: http.StatusConflict, Message: "document state does not allow publishing"},
			{Err: usecase.ErrUnnamedVariables, Status: http.StatusUnprocessableEntity, Message: "minute has unnamed variables"},
		}, http.StatusInternalServerError, "failed to publish document")
		return
	}

	c.JSON(http.StatusOK, newDocumentPayload(*doc, actor))
}

func (h *DocumentHandler) RevertToDraft(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	doc, err := h.documents.RevertToDraft(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
			{Err: usecase.ErrPermissionDenied, Status: http.StatusForbidden, Message: "insufficient permissions"},
			{Err: usecase.ErrInvalidTransition, Status: http.StatusConflict, Message: "document state does not allow reverting"},
		}, http.StatusInternalServerError, "failed to revert document")
		return
	}

	c.JSON(http.StatusOK, newDocumentPayload(*doc, actor))
}

// Expire moves a pending document to Expired once its signing window passed.
func (h *DocumentHandler) Expire(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	doc, err := h.documents.MarkExpired(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
			{Err: usecase.ErrInvalidTransition, Status: http.StatusConflict, Message: "document state does not allow expiration"},
		}, http.StatusInternalServerError, "failed to expire document")
		return
	}

	c.JSON(http.StatusOK, newDocumentPayload(*doc, actor))
}
