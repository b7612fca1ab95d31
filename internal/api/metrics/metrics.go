// Package metrics defines and registers all custom Prometheus metrics for the
// translation gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "translator"

// TranslationsTotal counts translation requests that reached the backend
// pipeline, labelled by terminal state.
// Labels:
//   - status: "completed" or "failed"
//   - target_language: the sanitized target language of the request
var TranslationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translations_total",
		Help:      "Total number of translation requests, by terminal status.",
	},
	[]string{"status", "target_language"},
)

// AuthFailuresTotal counts requests rejected before reaching the pipeline.
// Label:
//   - reason: "missing_token", "invalid_token", or "insufficient_permissions"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication/authorization attempts.",
	},
	[]string{"reason"},
)

// BackendRequestDuration measures individual backend calls.
// Labels:
//   - operation: "list", "pull", or "generate"
//   - status: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the Ollama backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation", "status"},
)

// BackendRetriesTotal counts the single bounded retries applied to transient
// backend faults.
var BackendRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_retries_total",
		Help:      "Total number of backend calls retried after a transient fault.",
	},
)

// CacheLookupsTotal counts translation-cache decisions.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of translation cache lookups, by result.",
	},
	[]string{"result"},
)
