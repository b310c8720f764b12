package handlers

import (
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loke-social/loke-server/internal/database"
	"github.com/loke-social/loke-server/internal/handlers/dto"
	"github.com/loke-social/loke-server/internal/middleware"
	"github.com/loke-social/loke-server/internal/models"
	"github.com/loke-social/loke-server/pkg/auth"
)

type PostHandler struct {
	db *database.Database
}

func NewPostHandler(db *database.Database) *PostHandler {
	return &PostHandler{db: db}
}

func (h *PostHandler) Create(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Content == "" && req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post must have content or image"})
		return
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityEveryone
	}

	post := &models.Post{
		UserID:     username,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Visibility: visibility,
	}

	if err := h.db.CreatePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListByUser returns a user's posts, each filtered by its own visibility
// level. Works without a token; posts the requester may not see are simply
// absent from the page.
func (h *PostHandler) ListByUser(c *gin.Context) {
	targetUserID := c.Query("user_id")

	requester := auth.RequesterFromRequest(c.Request)
	requesterID := ""
	if requester != nil && !requester.Expired {
		requesterID = requester.UserID
	}

	if targetUserID == "" {
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user_id and no token provided"})
			return
		}
		targetUserID = requesterID
	}

	page, limit := pageAndLimit(c)

	isFriend := false
	if requesterID != "" && requesterID != targetUserID {
		isFriend, _ = h.db.AreFriends(requesterID, targetUserID)
	}

	posts, err := h.db.GetUserPosts(targetUserID, visibleLevels(requesterID == targetUserID, isFriend), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// visibleLevels is the set of per-post visibility levels the requester may
// see on the target's posts.
func visibleLevels(isOwner, isFriend bool) []string {
	switch {
	case isOwner:
		return []string{models.VisibilityEveryone, models.VisibilityFriendOnly, models.VisibilityOwnerOnly}
	case isFriend:
		return []string{models.VisibilityEveryone, models.VisibilityFriendOnly}
	default:
		return []string{models.VisibilityEveryone}
	}
}

// Feed returns a page of posts from the requester and their accepted
// friends, newest first, shuffled within the page.
func (h *PostHandler) Feed(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)
	page, limit := pageAndLimit(c)

	links, err := h.db.ListFriends(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list friends"})
		return
	}

	posts, err := h.db.GetFeedPosts(username, friendUsernames(links, username), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build feed"})
		return
	}

	rand.Shuffle(len(posts), func(i, j int) { posts[i], posts[j] = posts[j], posts[i] })

	c.JSON(http.StatusOK, posts)
}

// friendUsernames extracts the peer of each accepted link.
func friendUsernames(links []models.Friend, username string) []string {
	out := make([]string, 0, len(links))
	for _, link := range links {
		other := link.FriendUserID
		if other == username {
			other = link.UserID
		}
		out = append(out, other)
	}
	return out
}

// pageAndLimit parses the pagination query params the list endpoints share.
func pageAndLimit(c *gin.Context) (int, int) {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return page, limit
}

func (h *PostHandler) Delete(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)
	postID := c.Param("id")

	post, err := h.db.GetPost(postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	if post.UserID != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own posts"})
		return
	}

	if err := h.db.DeletePost(postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Comment(c *gin.Context) {
	username := c.MustGet(middleware.UserIDKey).(string)

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.GetPost(req.PostID.String()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		UserID:  username,
		Content: req.Content,
	}

	if err := h.db.AddComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) Like(c *gin.Context) {
	var req dto.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.db.LikePost(req.PostID.String(), false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "liked successfully", "likes": post.Likes})
}

// SecretLike bumps the anonymous counter; no identity required.
func (h *PostHandler) SecretLike(c *gin.Context) {
	var req dto.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.db.LikePost(req.PostID.String(), true)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "liked secretly", "secret_likes": post.SecretLikes})
}
