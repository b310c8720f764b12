package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loke-social/loke-server/internal/database"
	"github.com/loke-social/loke-server/internal/handlers/dto"
	"github.com/loke-social/loke-server/internal/middleware"
	"github.com/loke-social/loke-server/internal/models"
)

type FriendHandler struct {
	db *database.Database
}

func NewFriendHandler(db *database.Database) *FriendHandler {
	return &FriendHandler{db: db}
}

// SendRequest creates a pending link toward another user.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FriendUserID == username {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot send friend request to yourself"})
		return
	}

	if _, err := h.db.GetUserByUsername(req.FriendUserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if link, err := h.db.GetFriendLink(username, req.FriendUserID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "friend link already exists", "status": link.Status})
		return
	}

	friend := &models.Friend{
		UserID:       username,
		FriendUserID: req.FriendUserID,
		Status:       models.FriendPending,
	}

	if err := h.db.CreateFriend(friend); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create friend request"})
		return
	}

	c.JSON(http.StatusCreated, dto.FriendResponse{
		ID:           friend.ID,
		UserID:       friend.UserID,
		FriendUserID: friend.FriendUserID,
		Status:       friend.Status,
	})
}

// Accept marks a pending request accepted. Only the addressee may accept.
func (h *FriendHandler) Accept(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.IDOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friend, err := h.db.GetFriend(req.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
		return
	}

	if friend.FriendUserID != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the addressee of this request"})
		return
	}

	if friend.Status == models.FriendAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "friend request already accepted"})
		return
	}

	friend.Status = models.FriendAccepted
	if err := h.db.UpdateFriend(friend); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, dto.FriendResponse{
		ID:           friend.ID,
		UserID:       friend.UserID,
		FriendUserID: friend.FriendUserID,
		Status:       friend.Status,
	})
}

// Reject drops a pending request.
func (h *FriendHandler) Reject(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.IDOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friend, err := h.db.GetFriend(req.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
		return
	}

	if friend.FriendUserID != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the addressee of this request"})
		return
	}

	if err := h.db.DeleteFriend(friend.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request rejected"})
}

// Remove deletes an accepted link from either side.
func (h *FriendHandler) Remove(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.IDOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friend, err := h.db.GetFriend(req.ID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "friend link not found"})
		return
	}

	if friend.UserID != username && friend.FriendUserID != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "not part of this friend link"})
		return
	}

	if err := h.db.DeleteFriend(friend.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove friend"})
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns the requester's accepted friends with peer profile info.
func (h *FriendHandler) List(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	links, err := h.db.ListFriends(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list friends"})
		return
	}

	result := make([]dto.FriendResponse, 0, len(links))
	for _, link := range links {
		otherID := link.FriendUserID
		if otherID == username {
			otherID = link.UserID
		}

		resp := dto.FriendResponse{
			ID:           link.ID,
			UserID:       username,
			FriendUserID: otherID,
			Status:       link.Status,
		}
		if user, err := h.db.GetUserByUsername(otherID); err == nil {
			resp.Name = user.Name
			resp.AvatarURL = user.AvatarURL
		}
		result = append(result, resp)
	}

	c.JSON(http.StatusOK, result)
}

// Pending returns incoming requests awaiting the requester's answer.
func (h *FriendHandler) Pending(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	links, err := h.db.ListPendingRequests(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pending requests"})
		return
	}

	result := make([]dto.FriendResponse, 0, len(links))
	for _, link := range links {
		resp := dto.FriendResponse{
			ID:           link.ID,
			UserID:       link.UserID,
			FriendUserID: link.FriendUserID,
			Status:       link.Status,
		}
		if user, err := h.db.GetUserByUsername(link.UserID); err == nil {
			resp.Name = user.Name
			resp.AvatarURL = user.AvatarURL
		}
		result = append(result, resp)
	}

	c.JSON(http.StatusOK, result)
}
