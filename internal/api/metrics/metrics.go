// Package metrics defines and registers all custom Prometheus metrics for
// the ERP backend. It is the single source of truth for metric names,
// labels, and help strings. All metrics register with the default registry
// via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "erp"

// ── Real-time channel metrics ─────────────────────────────────────────────────

// OpenChannels tracks the number of websocket channels currently open,
// bound or not.
var OpenChannels = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_open_channels",
		Help:      "Current number of open websocket channels.",
	},
)

// EnvelopesPublishedTotal counts envelopes successfully handed to a channel
// send buffer.
// Label:
//   - kind: envelope type (e.g. "notification-created")
var EnvelopesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_envelopes_published_total",
		Help:      "Total number of envelopes published to open channels, by kind.",
	},
	[]string{"kind"},
)

// EnvelopeSendErrorsTotal counts sends that failed (buffer full or channel
// closed). Each failure also unbinds the channel.
var EnvelopeSendErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_envelope_send_errors_total",
		Help:      "Total number of failed envelope sends, each causing an unbind.",
	},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// NotificationsCreatedTotal counts notifications written to the store.
var NotificationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications created.",
	},
)

// ChatMessagesSentTotal counts chat messages written to the store.
var ChatMessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_sent_total",
		Help:      "Total number of chat messages sent.",
	},
)

// ── AI summary metrics ────────────────────────────────────────────────────────

// SummaryDuration measures end-to-end latency of a summary request,
// including the model call on cache misses.
// Label:
//   - kind: "finance", "notifications", or "chat"
var SummaryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_summary_duration_seconds",
		Help:      "Duration of AI summary generation, by summary kind.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// SummaryCacheTotal counts summary cache lookups.
// Label:
//   - result: "hit" or "miss"
var SummaryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_summary_cache_total",
		Help:      "Total number of summary cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
