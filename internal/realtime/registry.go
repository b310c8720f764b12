package realtime

import "sync"

// Registry is the per-process source of truth for which live connections
// belong to which user. A connection id appears under at most one user.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]map[string]struct{}),
	}
}

// Register adds connID to userID's connection set. No-op if already present.
func (r *Registry) Register(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		set = make(map[string]struct{})
		r.conns[userID] = set
	}
	set[connID] = struct{}{}
}

// Unregister removes connID from userID's set, pruning the entry when the
// set empties. No-op if absent.
func (r *Registry) Unregister(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

// ConnectionsFor returns a snapshot of the user's connection ids. Callers
// iterate the result during fan-out; concurrent registry mutation is never
// observable through it.
func (r *Registry) ConnectionsFor(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	out := make([]string, 0, len(set))
	for connID := range set {
		out = append(out, connID)
	}
	return out
}

// OnlineUsers returns the ids of users with at least one live connection.
func (r *Registry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.conns))
	for userID := range r.conns {
		users = append(users, userID)
	}
	return users
}
