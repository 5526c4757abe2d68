package realtime

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/newsdesk/newsroom-api/internal/api/metrics"
	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// Dispatcher fans change events out to every currently open connection.
//
// Delivery is best-effort and bounded to the moment of the call: connections
// that open afterwards see nothing, connections that turn out to be closed
// or slow are pruned and skipped. Nothing is queued, retried, or awaited to
// acknowledgement, and no per-connection failure ever reaches the caller.
type Dispatcher struct {
	registry *Registry
	log      zerolog.Logger
}

func NewDispatcher(registry *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Publish serializes the event once and pushes the same bytes to every open
// connection. Callers invoke it strictly after the corresponding store write
// succeeded.
func (d *Dispatcher) Publish(event domain.ChangeEvent) {
	data, err := json.Marshal(messageFromEvent(event))
	if err != nil {
		d.log.Error().Err(err).Str("type", string(event.Type)).Msg("failed to serialize broadcast event")
		return
	}

	delivered := 0
	d.registry.ForEachOpen(func(c *Client) bool {
		if !c.trySend(data) {
			metrics.BroadcastDropsTotal.Inc()
			return false
		}
		delivered++
		return true
	})

	metrics.BroadcastsTotal.WithLabelValues(string(event.Type)).Inc()
	d.log.Debug().
		Str("type", string(event.Type)).
		Int("delivered", delivered).
		Msg("event broadcast")
}
