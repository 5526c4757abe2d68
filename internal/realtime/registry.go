package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/newsdesk/newsroom-api/internal/api/metrics"
)

// Registry owns the set of live connections. Membership is mutated only
// through Register and Unregister; the raw set is never exposed. A
// connection is added on open and removed on close, error, or when a send
// to it fails during iteration.
type Registry struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

// Register adds a client and greets it with a welcome message. The greeting
// is fire-and-forget: a failed send is ignored, the connection's pumps will
// surface a dead transport soon enough.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	r.clients[c] = struct{}{}
	size := len(r.clients)
	r.mu.Unlock()

	metrics.WebsocketConnections.Set(float64(size))

	if welcome, err := json.Marshal(welcomeMessage()); err == nil {
		c.trySend(welcome)
	}

	r.log.Debug().Int("connections", size).Msg("websocket client registered")
}

// Unregister removes a client and closes its send channel. Removing an
// absent client is a no-op.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	_, present := r.clients[c]
	if present {
		delete(r.clients, c)
	}
	size := len(r.clients)
	r.mu.Unlock()

	if !present {
		return
	}

	c.close()
	metrics.WebsocketConnections.Set(float64(size))
	r.log.Debug().Int("connections", size).Msg("websocket client unregistered")
}

// ForEachOpen applies fn to a snapshot of the currently registered clients.
// A client for which fn returns false is pruned. Clients that unregister
// concurrently are tolerated: the snapshot guarantees each entry present at
// call time is visited at most once, and removals never skip or double-visit
// unaffected entries.
func (r *Registry) ForEachOpen(fn func(c *Client) bool) {
	r.mu.RLock()
	snapshot := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		if !fn(c) {
			r.Unregister(c)
		}
	}
}

// Len reports the number of registered clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
