package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carlos18bp/gym-project-sub003/internal/repository"
	"github.com/carlos18bp/gym-project-sub003/internal/transport/http/middleware"
	"github.com/carlos18bp/gym-project-sub003/internal/usecase"
)

// SignatureHandler records signature decisions on pending documents.
type SignatureHandler struct {
	signing *usecase.SigningService
}

func NewSignatureHandler(signing *usecase.SigningService) *SignatureHandler {
	return &SignatureHandler{signing: signing}
}

func (h *SignatureHandler) RegisterRoutes(r *gin.RouterGroup, limiters ...gin.HandlerFunc) {
	sign := append(append([]gin.HandlerFunc{}, limiters...), h.Sign)
	reject := append(append([]gin.HandlerFunc{}, limiters...), h.Reject)
	r.POST("/:id/sign", sign...)
	r.POST("/:id/reject", reject...)
}

func (h *SignatureHandler) Sign(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	doc, err := h.signing.Sign(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
			{Err: usecase.ErrSigningNotAllowed, Status: http.StatusForbidden, Message: "signing not allowed for this document"},
		}, http.StatusInternalServerError, "failed to record signature")
		return
	}

	c.JSON(http.StatusOK, newDocumentPayload(*doc, actor))
}

func (h *SignatureHandler) Reject(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "invalid authentication"))
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "rejection comment is required"))
		return
	}

	doc, err := h.signing.Reject(c.Request.Context(), c.Param("id"), actor, req.Comment)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "document not found"},
			{Err: usecase.ErrSigningNotAllowed, Status: http.StatusForbidden, Message: "rejection not allowed for this document"},
			{Err: usecase.ErrRejectionCommentRequired, Status: http.StatusBadRequest, Message: "rejection comment is required"},
		}, http.StatusInternalServerError, "failed to record rejection")
		return
	}

	c.JSON(http.StatusOK, newDocumentPayload(*doc, actor))
}
