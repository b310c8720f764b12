package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/loke-social/loke-server/internal/handlers"
	"github.com/loke-social/loke-server/internal/middleware"
	"github.com/loke-social/loke-server/pkg/auth"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Friend       *handlers.FriendHandler
	Post         *handlers.PostHandler
	Conversation *handlers.ConversationHandler
	Realtime     *handlers.RealtimeHandler
	WebSocket    *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, h *Handlers, jwtMgr *auth.JWTManager, rdb *redis.Client, wsPath string) {
	authMW := middleware.AuthMiddleware(jwtMgr, rdb)

	// Live connections. Not auth-gated: the gateway admits anonymous
	// connections and simply never delivers to them.
	r.GET(wsPath, h.WebSocket.HandleWebSocket)

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", authMW, h.Auth.Logout)
		authGroup.POST("/refresh", authMW, h.Auth.Refresh)
	}

	// Presence read, public like the rest of the realtime surface.
	r.GET("/api/realtime/online-users", h.Realtime.OnlineUsers)

	// Post listing applies per-post visibility itself and works with or
	// without a token; anonymous likes and profile reads need none either.
	r.GET("/api/v1/posts", h.Post.ListByUser)
	r.POST("/api/v1/posts/secret-like", h.Post.SecretLike)
	r.GET("/api/v1/users/:username", h.User.GetProfile)

	api := r.Group("/api/v1", authMW)
	{
		conversations := api.Group("/conversations")
		{
			conversations.POST("", h.Conversation.Create)
			conversations.GET("", h.Conversation.List)
			conversations.GET("/:id", h.Conversation.Get)
			conversations.POST("/messages", h.Conversation.SendMessage)
		}

		friends := api.Group("/friends")
		{
			friends.POST("/request", h.Friend.SendRequest)
			friends.PUT("/accept", h.Friend.Accept)
			friends.PUT("/reject", h.Friend.Reject)
			friends.DELETE("/remove", h.Friend.Remove)
			friends.GET("/list", h.Friend.List)
			friends.GET("/pending", h.Friend.Pending)
		}

		posts := api.Group("/posts")
		{
			posts.GET("/feed", h.Post.Feed)
			posts.POST("/create", h.Post.Create)
			posts.DELETE("/:id", h.Post.Delete)
			posts.POST("/comment", h.Post.Comment)
			posts.POST("/like", h.Post.Like)
		}

		user := api.Group("/user")
		{
			user.PUT("/update", h.User.UpdateProfile)
			user.DELETE("/:username", h.User.DeleteAccount)
		}
	}
}
