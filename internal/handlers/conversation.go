package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/loke-social/loke-server/internal/chat"
	"github.com/loke-social/loke-server/internal/handlers/dto"
	"github.com/loke-social/loke-server/internal/middleware"
)

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

type ConversationHandler struct {
	service *chat.Service
}

func NewConversationHandler(service *chat.Service) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// Create resolves or creates the conversation with another user.
func (h *ConversationHandler) Create(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.service.CreateConversation(c.Request.Context(), username, req.OtherID)
	if err != nil {
		status, msg := chatErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(conv, nil))
}

// List returns the requester's conversations with short message previews.
func (h *ConversationHandler) List(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	convs, previews, err := h.service.ListConversations(c.Request.Context(), username)
	if err != nil {
		status, msg := chatErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	result := make([]dto.ConversationResponse, 0, len(convs))
	for i := range convs {
		result = append(result, dto.ToConversationResponse(&convs[i], previews[convs[i].ID]))
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one conversation with its recent history.
func (h *ConversationHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	conv, msgs, err := h.service.GetConversation(c.Request.Context(), id)
	if err != nil {
		status, msg := chatErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(conv, msgs))
}

// SendMessage runs the delivery path: persist plus realtime push to the
// recipient's live connections.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), req.ConversationID, username, req.Content, req.Type)
	if err != nil {
		status, errMsg := chatErrorStatus(err)
		c.JSON(status, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageContent(*msg))
}

func chatErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, chat.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound, "conversation not found"
	case errors.Is(err, chat.ErrInvalidRecipient):
		return http.StatusBadRequest, "invalid recipient"
	case errors.Is(err, chat.ErrPersistFailed):
		return http.StatusInternalServerError, "failed to save message"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
