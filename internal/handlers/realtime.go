package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loke-social/loke-server/internal/chat"
)

type RealtimeHandler struct {
	service *chat.Service
}

func NewRealtimeHandler(service *chat.Service) *RealtimeHandler {
	return &RealtimeHandler{service: service}
}

// OnlineUsers returns users with at least one live connection. Eventually
// consistent when the presence backend is shared.
func (h *RealtimeHandler) OnlineUsers(c *gin.Context) {
	users, err := h.service.ListOnlineUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list online users"})
		return
	}

	c.JSON(http.StatusOK, users)
}
