package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	ws "github.com/loke-social/loke-server/internal/websocket"
	"github.com/loke-social/loke-server/pkg/auth"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin once the web client's domain is fixed
				return true
			},
		},
	}
}

// HandleWebSocket accepts a live connection. The upgrade is not gated on
// authentication: a missing, malformed or expired token still gets a
// connection, but one registered under no user, so it never receives a
// delivery. The token comes from the Authorization header or, since
// browsers cannot set headers on WebSocket upgrades, the access_token
// query parameter.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := ""
	if requester := auth.RequesterFromRequest(c.Request); requester != nil && !requester.Expired {
		userID = requester.UserID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
