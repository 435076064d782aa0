// Package metrics defines and registers the storefront's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics are registered with the default registry at package init via
// promauto and are exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shophub/storefront/internal/core/domain"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts sign-in and sign-up attempts.
// Labels:
//   - op: "signin" or "signup"
//   - result: "success", "rejected" (remote said no), or "error" (unreachable)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of sign-in and sign-up attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// SignOutsTotal counts sign-out requests, including ones without a session.
var SignOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signouts_total",
		Help:      "Total number of sign-out requests.",
	},
)

// GuardRedirectsTotal counts requests to protected views that were sent to
// the entry view.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of unauthenticated requests redirected to the entry view.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogLoadsTotal counts settled catalog loads.
// Label:
//   - status: "loaded" or "fallback_loaded"
var CatalogLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_loads_total",
		Help:      "Total number of catalog loads, by settled status.",
	},
	[]string{"status"},
)

// CatalogTransitionsTotal counts every state change inside a load cycle.
var CatalogTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_transitions_total",
		Help:      "Total number of catalog state transitions.",
	},
	[]string{"from", "to"},
)

// CatalogProducts tracks how many products the last load produced.
var CatalogProducts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_products",
		Help:      "Number of products returned by the most recent catalog load.",
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart mutations.
// Label:
//   - op: "add", "add_replayed", "add_rejected", or "remove"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart operations, by kind.",
	},
	[]string{"op"},
)

// CartItems tracks the current number of entries in the cart.
var CartItems = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_items",
		Help:      "Current number of entries in the cart, duplicates included.",
	},
)

// ObserveCatalogTransition is a service.TransitionFunc.
func ObserveCatalogTransition(from, to domain.CatalogStatus) {
	CatalogTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveCatalogLoad records a settled load.
func ObserveCatalogLoad(state domain.CatalogState) {
	CatalogLoadsTotal.WithLabelValues(string(state.Status)).Inc()
	CatalogProducts.Set(float64(len(state.Products)))
}
