package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carlos18bp/gym-project-sub003/internal/transport/http/middleware"
	"github.com/carlos18bp/gym-project-sub003/internal/usecase"
)

// ClientHandler exposes the cached client roster to lawyers building
// permission sets.
type ClientHandler struct {
	roster *usecase.RosterService
}

func NewClientHandler(roster *usecase.RosterService) *ClientHandler {
	return &ClientHandler{roster: roster}
}

func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", middleware.RequireLawyer(), h.List)
	r.POST("/cache/invalidate", middleware.RequireLawyer(), h.InvalidateCache)
}

// List returns the roster, optionally filtered by a case-insensitive substring
// match over email and full name.
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	clients, err := h.roster.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list clients"))
		return
	}

	payloads := make([]ClientPayload, 0, len(clients))
	for _, client := range clients {
		payloads = append(payloads, newClientPayload(client))
	}

	c.JSON(http.StatusOK, ClientListResponse{Clients: payloads, Total: len(payloads)})
}

// InvalidateCache drops the cached roster so the next read hits the store.
func (h *ClientHandler) InvalidateCache(c *gin.Context) {
	if err := h.roster.Invalidate(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to invalidate roster cache"))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "roster cache invalidated"})
}
