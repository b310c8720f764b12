package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/loke-social/loke-server/internal/realtime"
)

// Envelope is the frame pushed to clients: a named event with a payload.
type Envelope struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub terminates live connections and bridges them to the connection
// registry and presence backend. It is the only path by which a
// server-initiated event reaches a specific client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	registry *realtime.Registry
	presence realtime.Backend
	relay    *realtime.Relay
}

func NewHub(registry *realtime.Registry, presence realtime.Backend) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		registry: registry,
		presence: presence,
	}
}

// EnableRelay bridges deliveries to gateway processes holding connections
// this process does not.
func (h *Hub) EnableRelay(relay *realtime.Relay) {
	h.relay = relay
	relay.Start(h)
}

// Register tracks a new client. Authenticated clients also enter the
// registry and presence backend; anonymous ones are held open but are
// invisible to delivery.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	if client.UserID == "" {
		log.WithField("conn_id", client.ID).Debug("anonymous client connected")
		return
	}

	h.registry.Register(client.UserID, client.ID)
	if err := h.presence.Add(context.Background(), client.UserID, client.ID); err != nil {
		log.WithError(err).WithField("user_id", client.UserID).Warn("presence add failed")
	}

	log.WithFields(log.Fields{"conn_id": client.ID, "user_id": client.UserID}).Info("client registered")
}

// Unregister removes a client on any disconnect path, graceful or abrupt.
// Calling it twice for the same client is a no-op the second time.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ID]
	if ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	h.mu.Unlock()

	if !ok || client.UserID == "" {
		return
	}

	h.registry.Unregister(client.UserID, client.ID)
	if err := h.presence.Remove(context.Background(), client.UserID, client.ID); err != nil {
		log.WithError(err).WithField("user_id", client.UserID).Warn("presence remove failed")
	}

	log.WithFields(log.Fields{"conn_id": client.ID, "user_id": client.UserID}).Info("client unregistered")
}

// SendToUser pushes an event to every live connection of a user. A stale
// connection between lookup and push fails silently for that connection
// only; delivery to the user's other connections proceeds. No acks, no
// retries, no cross-connection ordering.
func (h *Hub) SendToUser(userID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).WithField("event", event).Error("payload marshal failed")
		return
	}

	connIDs, err := h.presence.Connections(context.Background(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("presence lookup failed")
		connIDs = h.registry.ConnectionsFor(userID)
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: data, Timestamp: time.Now().UTC()})
	if err != nil {
		log.WithError(err).Error("envelope marshal failed")
		return
	}

	for _, connID := range connIDs {
		h.pushFrame(userID, connID, frame)
	}

	if h.relay != nil {
		h.relay.Publish(context.Background(), userID, event, data)
	}
}

// DeliverLocal pushes a relayed event to the connections this process
// holds for the user.
func (h *Hub) DeliverLocal(userID, event string, payload json.RawMessage) {
	frame, err := json.Marshal(Envelope{Event: event, Data: payload, Timestamp: time.Now().UTC()})
	if err != nil {
		log.WithError(err).Error("envelope marshal failed")
		return
	}

	for _, connID := range h.registry.ConnectionsFor(userID) {
		h.pushFrame(userID, connID, frame)
	}
}

// pushFrame holds the read lock across the non-blocking send so a
// concurrent Unregister cannot close the channel mid-push.
func (h *Hub) pushFrame(userID, connID string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connID]
	if !ok {
		// Stale or homed on another process. A deliberate silent miss: the
		// durable store is the source of truth.
		log.WithFields(log.Fields{"conn_id": connID, "user_id": userID}).Debug("delivery miss")
		return
	}

	if err := client.push(frame); err != nil {
		log.WithFields(log.Fields{"conn_id": connID, "user_id": userID}).Warn("client send queue full")
	}
}

// Stop drains the hub, forcibly closing every live connection. Each
// authenticated client also leaves the registry and presence backend, so a
// shared backend never keeps this process's connection ids after a
// graceful shutdown.
func (h *Hub) Stop() {
	if h.relay != nil {
		h.relay.Stop()
	}

	h.mu.Lock()
	drained := make([]*Client, 0, len(h.clients))
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
		drained = append(drained, client)
	}
	h.mu.Unlock()

	for _, client := range drained {
		if client.Conn != nil {
			client.Conn.Close()
		}
		if client.UserID == "" {
			continue
		}
		h.registry.Unregister(client.UserID, client.ID)
		if err := h.presence.Remove(context.Background(), client.UserID, client.ID); err != nil {
			log.WithError(err).WithField("user_id", client.UserID).Warn("presence remove failed")
		}
	}
}
