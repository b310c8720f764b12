package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/loke-social/loke-server/pkg/auth"
)

const UserIDKey = "userID"

// AuthMiddleware verifies the bearer token and rejects blacklisted ones.
// The redis client is optional; without it no blacklist check runs.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}

		if redisClient != nil {
			exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
			if err != nil || exists > 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token is blacklisted"})
				c.Abort()
				return
			}
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Next()
	}
}
