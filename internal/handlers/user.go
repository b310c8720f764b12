package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loke-social/loke-server/internal/database"
	"github.com/loke-social/loke-server/internal/handlers/dto"
	"github.com/loke-social/loke-server/internal/middleware"
)

type UserHandler struct {
	db *database.Database
}

func NewUserHandler(db *database.Database) *UserHandler {
	return &UserHandler{db: db}
}

// GetProfile returns a user's public profile. Open endpoint; the response
// DTO never includes email or credential fields.
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.db.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicProfile(user))
}

// UpdateProfile applies partial profile changes to the requester's account.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Hometown != "" {
		user.Hometown = req.Hometown
	}
	if req.Education != "" {
		user.Education = req.Education
	}
	if req.Job != "" {
		user.Job = req.Job
	}
	if req.Company != "" {
		user.Company = req.Company
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.Interests != "" {
		user.Interests = req.Interests
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   user.Username,
		"email":      user.Email,
		"name":       user.Name,
		"bio":        user.Bio,
		"avatar_url": user.AvatarURL,
	})
}

// DeleteAccount removes the requester's own account only.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)
	target := c.Param("username")

	if target != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete other user's account"})
		return
	}

	if err := h.db.DeleteUser(username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
