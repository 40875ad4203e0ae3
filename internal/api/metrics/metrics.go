// Package metrics defines and registers the custom Prometheus metrics of the
// EcoPilot API. HTTP request metrics come from the echoprometheus middleware;
// this package covers the domain.
//
// Metrics are registered with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecopilot"

// ── Account metrics ───────────────────────────────────────────────────────────

// AuthOperationsTotal counts account operations by outcome.
// Labels:
//   - operation: register, login, logout, update_password, subscribe, cancel_subscription
//   - result: "success" or the failure reason (e.g. "user_exists", "invalid_credentials")
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of account operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Account event pipeline ────────────────────────────────────────────────────

// AccountEventsProcessedTotal counts account events persisted by the workers.
// Label:
//   - kind: the event kind (e.g. "subscribed")
var AccountEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_events_processed_total",
		Help:      "Total number of account events successfully processed.",
	},
	[]string{"kind"},
)

// AccountEventsErrorsTotal counts account events that were lost.
// Label:
//   - reason: "queue_full" or "process_failed"
var AccountEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_events_errors_total",
		Help:      "Total number of account events dropped or failed.",
	},
	[]string{"reason"},
)

// AccountEventsQueueDepth tracks the events waiting in each worker channel.
var AccountEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "account_events_queue_depth",
		Help:      "Current number of account events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Itinerary metrics ─────────────────────────────────────────────────────────

// ItinerariesGeneratedTotal counts successful generation requests.
// Label:
//   - theme: the resolved theme (after fallback)
var ItinerariesGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "itineraries_generated_total",
		Help:      "Total number of itinerary generation requests served, by theme.",
	},
	[]string{"theme"},
)

// GeocodeRequestDuration measures calls to the upstream geocoder.
// Label:
//   - result: "ok" or "error"
var GeocodeRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "geocode_request_duration_seconds",
		Help:      "Duration of upstream geocoder requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// GeocodeCacheTotal counts geocode cache lookups.
// Label:
//   - result: "hit" or "miss"
var GeocodeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_cache_total",
		Help:      "Total number of geocode cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// DatasetReloadsTotal counts theme dataset loads.
// Label:
//   - result: "ok" or "error"
var DatasetReloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_reloads_total",
		Help:      "Total number of theme dataset loads, by result.",
	},
	[]string{"result"},
)
