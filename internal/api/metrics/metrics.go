// Package metrics defines and registers the custom Prometheus metrics of the
// invoice tracker. It is the single source of truth for metric names, labels
// and help strings. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Overdue sweep ────────────────────────────────────────────────────────────

// SweepsTotal counts overdue sweeps.
// Label:
//   - result: "ok" or "error"
var SweepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overdue_sweeps_total",
		Help:      "Total number of overdue sweeps, labelled by result.",
	},
	[]string{"result"},
)

// InvoicesMarkedOverdueTotal counts invoices flipped from Pending to Overdue
// by the sweep.
var InvoicesMarkedOverdueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_marked_overdue_total",
		Help:      "Total number of invoices moved to Overdue by the sweep.",
	},
)

// SweepDuration measures one bulk sweep statement.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "overdue_sweep_duration_seconds",
		Help:      "Duration of the overdue sweep.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	},
)

// ── Auth ─────────────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected authentication and authorization attempts.
// Label:
//   - reason: "missing_credentials", "invalid_token", "bad_credentials" or "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication or authorization attempts.",
	},
	[]string{"reason"},
)

// ── Invoices ─────────────────────────────────────────────────────────────────

// InvoicesWrittenTotal counts successful invoice writes.
// Labels:
//   - operation: "create", "update" or "delete"
//   - type: "Receivable", "Payable", or "" for deletes
var InvoicesWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_written_total",
		Help:      "Total number of invoice writes, by operation and type.",
	},
	[]string{"operation", "type"},
)

// ── Notifications ────────────────────────────────────────────────────────────

// NotificationDeliveriesTotal counts delivery attempts.
// Label:
//   - result: "sent", "failed" or "rejected" (queue full)
var NotificationDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_deliveries_total",
		Help:      "Total number of notification delivery attempts, by result.",
	},
	[]string{"result"},
)

// DeliveryQueueDepth tracks the number of deliveries waiting across all
// dispatcher workers.
var DeliveryQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notification deliveries pending in the dispatcher.",
	},
)
