package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loke-social/loke-server/internal/realtime"
	ws "github.com/loke-social/loke-server/internal/websocket"
)

func wsTestServer(t *testing.T) (*httptest.Server, *realtime.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := realtime.NewRegistry()
	hub := ws.NewHub(registry, realtime.NewLocalBackend(registry))
	t.Cleanup(hub.Stop)

	r := gin.New()
	r.GET("/ws", NewWebSocketHandler(hub).HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, registry
}

func wsURL(srv *httptest.Server, query string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if query != "" {
		u += "?" + query
	}
	return u
}

func token(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestWebSocketAuthenticatedConnectRegisters(t *testing.T) {
	srv, registry := wsTestServer(t)

	tok := token(t, "bob", time.Now().Add(time.Hour))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "access_token="+tok), nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(registry.ConnectionsFor("bob")) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool {
		return len(registry.ConnectionsFor("bob")) == 0
	}, time.Second, 10*time.Millisecond, "disconnect must unregister")
}

func TestWebSocketAnonymousConnectCompletes(t *testing.T) {
	srv, registry := wsTestServer(t)

	// No token at all: the upgrade still succeeds.
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Empty(t, registry.OnlineUsers())
}

func TestWebSocketExpiredTokenTreatedAsAnonymous(t *testing.T) {
	srv, registry := wsTestServer(t)

	tok := token(t, "bob", time.Now().Add(-10*time.Second))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "access_token="+tok), nil)
	require.NoError(t, err, "expired credential still completes the transport connection")
	defer conn.Close()

	// But yields no usable identity.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, registry.ConnectionsFor("bob"))
}
