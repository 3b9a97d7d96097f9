// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Labels:
//   - kind: "customer" or "admin"
//   - result: "success", "invalid_credentials", "forbidden" or "error"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// AuthGateRejectionsTotal counts requests refused by an authentication gate.
// Labels:
//   - gate: "customer" or "admin"
//   - reason: "missing_header", "missing_token", "invalid_token", "expired_token" or "forbidden_role"
var AuthGateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_rejections_total",
		Help:      "Total number of requests rejected by an authentication gate.",
	},
	[]string{"gate", "reason"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts order placements.
// Label:
//   - replayed: "true" when an Idempotency-Key returned an earlier order
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed, labelled by idempotent replay.",
	},
	[]string{"replayed"},
)

// OrderEventsProcessedTotal counts audit events persisted by the dispatcher.
// Label:
//   - field: the order attribute that changed ("status" or "paymentStatus")
var OrderEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_processed_total",
		Help:      "Total number of order audit events successfully recorded.",
	},
	[]string{"field"},
)

// OrderEventsErrorsTotal counts audit events that were not recorded.
// Label:
//   - reason: "queue_full" or "process_failed"
var OrderEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_errors_total",
		Help:      "Total number of order audit events that could not be recorded.",
	},
	[]string{"reason"},
)

// OrderEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var OrderEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_events_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// OrderEventProcessingDuration measures dequeue-to-persistence time of one event.
// Label:
//   - field: the changed attribute, or "error" on failure
var OrderEventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_event_processing_duration_seconds",
		Help:      "Duration of audit event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"field"},
)

// ── Catalogue metrics ─────────────────────────────────────────────────────────

// ProductsCreatedTotal counts products added through the back-office.
// Label:
//   - category: "skincare", "makeup", "haircare" or "fragrance"
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created, by category.",
	},
	[]string{"category"},
)
