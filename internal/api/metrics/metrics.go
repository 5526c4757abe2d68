// Package metrics defines and registers all custom Prometheus metrics for
// the newsroom API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsroom"

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticleMutationsTotal counts successful article mutations.
// Label:
//   - op: "create", "update", "delete", "bulk_update", "bulk_delete"
var ArticleMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_mutations_total",
		Help:      "Total number of successful article mutations, by operation.",
	},
	[]string{"op"},
)

// ── Broadcast metrics ─────────────────────────────────────────────────────────

// BroadcastsTotal counts change events fanned out to live connections.
// Label:
//   - type: the event type (e.g. "article.created")
var BroadcastsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "Total number of change events published to the WebSocket fan-out.",
	},
	[]string{"type"},
)

// BroadcastDropsTotal counts per-connection deliveries skipped because the
// connection was closed or its send buffer was full.
var BroadcastDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_drops_total",
		Help:      "Total number of per-connection broadcast deliveries dropped.",
	},
)

// WebsocketConnections tracks the number of currently registered connections.
var WebsocketConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_connections",
		Help:      "Number of currently open WebSocket connections.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginFailuresTotal counts rejected login attempts.
// Label:
//   - reason: "invalid_credentials", "throttled", "not_found"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of rejected login attempts, by reason.",
	},
	[]string{"reason"},
)
