// Package metrics defines and registers all custom Prometheus metrics for
// the POS counter service. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// ── Quote metrics ─────────────────────────────────────────────────────────────

// BillQuotesTotal counts bill calculation round-trips by outcome.
// Labels:
//   - result: "ok", "error", or "stale" (response discarded because the cart
//     mutated while the quote was in flight)
var BillQuotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bill_quotes_total",
		Help:      "Total number of bill calculation requests, by result.",
	},
	[]string{"result"},
)

// QuotesCoalescedTotal counts debounce timer resets: cart mutations that
// replaced an already-scheduled quote instead of issuing their own.
var QuotesCoalescedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_coalesced_total",
		Help:      "Total number of quote requests coalesced by the debounce window.",
	},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders created through the counter.
// Label:
//   - mode: "DINE_IN" or "TAKEAWAY"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by fulfillment mode.",
	},
	[]string{"mode"},
)

// PaymentsConfirmedTotal counts settled payments.
// Label:
//   - method: "CASH", "QRIS", or "TRANSFER"
var PaymentsConfirmedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_confirmed_total",
		Help:      "Total number of payments confirmed, by method.",
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// ActiveSessions tracks the number of live counter sessions in this process.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of live counter sessions.",
	},
)

// WSClients tracks the number of connected websocket subscribers.
var WSClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_clients",
		Help:      "Current number of connected websocket state subscribers.",
	},
)
