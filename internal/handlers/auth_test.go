package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loke-social/loke-server/internal/middleware"
	"github.com/loke-social/loke-server/pkg/auth"
)

func TestRefreshIssuesTokenForRequester(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mgr := auth.NewJWTManager("secret", time.Hour)
	h := NewAuthHandler(nil, mgr, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, "alice") })
	r.POST("/refresh", h.Refresh)

	w := doJSON(t, r, "POST", "/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])

	claims, err := mgr.Verify(body["token"])
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}
