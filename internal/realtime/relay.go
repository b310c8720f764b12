package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const relayChannel = "realtime:relay"

// RelayEvent is a delivery forwarded between gateway nodes. A node that
// looks up a user's connections in the shared presence store may find ids
// homed on another process; publishing the event lets that process push to
// its own connections. Origin lets nodes skip their own publications.
type RelayEvent struct {
	Origin  string          `json:"origin"`
	UserID  string          `json:"user_id"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// RelayDeliverer pushes a relayed event to the connections a node holds
// locally for a user.
type RelayDeliverer interface {
	DeliverLocal(userID, event string, payload json.RawMessage)
}

// Relay bridges fan-out between gateway nodes over Redis Pub/Sub.
type Relay struct {
	rdb    *redis.Client
	nodeID string
	cancel context.CancelFunc
}

func NewRelay(rdb *redis.Client, nodeID string) *Relay {
	return &Relay{rdb: rdb, nodeID: nodeID}
}

// Publish forwards a delivery to the other nodes. Failures are logged and
// swallowed: the durable store already guarantees delivery on next fetch.
func (r *Relay) Publish(ctx context.Context, userID, event string, payload json.RawMessage) {
	data, err := json.Marshal(RelayEvent{
		Origin:  r.nodeID,
		UserID:  userID,
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		log.WithError(err).Warn("relay: marshal event")
		return
	}
	if err := r.rdb.Publish(ctx, relayChannel, data).Err(); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("relay: publish")
	}
}

// Start subscribes to the relay channel and hands foreign events to the
// deliverer until Stop is called.
func (r *Relay) Start(d RelayDeliverer) {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	sub := r.rdb.Subscribe(ctx, relayChannel)

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev RelayEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.WithError(err).Warn("relay: bad event")
					continue
				}
				if ev.Origin == r.nodeID {
					continue
				}
				d.DeliverLocal(ev.UserID, ev.Event, ev.Payload)
			}
		}
	}()
}

func (r *Relay) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}
