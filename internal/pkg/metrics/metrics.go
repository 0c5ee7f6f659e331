// Package metrics defines and registers all custom Prometheus metrics for the
// auth gateway. It is the single source of truth for metric names, labels,
// and help strings.
//
// Collectors register with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the number of live sessions held in memory.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions.",
	},
)

// SessionPersistTotal counts snapshot writes.
// Label:
//   - result: "ok" or "error"
var SessionPersistTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_persist_total",
		Help:      "Total number of session snapshot writes, labelled by result.",
	},
	[]string{"result"},
)

// SessionPersistDuration measures how long a full snapshot write takes.
var SessionPersistDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_persist_duration_seconds",
		Help:      "Duration of a full session snapshot write.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Identity provider metrics ─────────────────────────────────────────────────

// IdentityRequestsTotal counts calls to the identity provider.
// Labels:
//   - operation: "login", "register" or "logout"
//   - outcome: "ok" or the failure kind ("http", "network", "parse", "timeout")
var IdentityRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_requests_total",
		Help:      "Total number of identity provider requests, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// IdentityRequestDuration measures identity provider round trips.
// Label:
//   - operation: "login", "register" or "logout"
var IdentityRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "identity_request_duration_seconds",
		Help:      "Duration of identity provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events written to the repository.
// Labels:
//   - type: the auth event type (e.g. "login", "logout")
//   - result: "ok" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events processed, by type and result.",
	},
	[]string{"type", "result"},
)

// AuditEventsDroppedTotal counts events discarded because a worker queue was full
// or the dispatcher was already closed.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped before processing.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
