package realtime

import "context"

// Backend tracks which connections are live for which user. The local
// variant sees only this process; the Redis variant shares the mapping
// across gateway processes so any of them can discover connections
// registered elsewhere.
type Backend interface {
	Add(ctx context.Context, userID, connID string) error
	Remove(ctx context.Context, userID, connID string) error
	Connections(ctx context.Context, userID string) ([]string, error)
	OnlineUsers(ctx context.Context) ([]string, error)
}

// LocalBackend delegates straight to the process-local registry. Correct
// only when a single gateway process serves all traffic.
type LocalBackend struct {
	registry *Registry
}

func NewLocalBackend(registry *Registry) *LocalBackend {
	return &LocalBackend{registry: registry}
}

func (b *LocalBackend) Add(_ context.Context, userID, connID string) error {
	b.registry.Register(userID, connID)
	return nil
}

func (b *LocalBackend) Remove(_ context.Context, userID, connID string) error {
	b.registry.Unregister(userID, connID)
	return nil
}

func (b *LocalBackend) Connections(_ context.Context, userID string) ([]string, error) {
	return b.registry.ConnectionsFor(userID), nil
}

func (b *LocalBackend) OnlineUsers(_ context.Context) ([]string, error) {
	return b.registry.OnlineUsers(), nil
}
