package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loke-social/loke-server/pkg/auth"
)

func testRouter(mgr *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(mgr, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.MustGet(UserIDKey)})
	})
	return r
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	mgr := auth.NewJWTManager("secret", time.Hour)
	token, err := mgr.Generate("alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	testRouter(mgr).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	mgr := auth.NewJWTManager("secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	testRouter(mgr).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	mgr := auth.NewJWTManager("secret", -10*time.Second)
	token, err := mgr.Generate("alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	testRouter(mgr).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	other := auth.NewJWTManager("other-secret", time.Hour)
	token, err := other.Generate("alice")
	require.NoError(t, err)

	mgr := auth.NewJWTManager("secret", time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	testRouter(mgr).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
