// Package metrics instruments credential resolution with Prometheus
// counters. Registration is lazy so library consumers that never call
// Init pay nothing; the recording helpers are no-ops until then.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeQueriesTotal *prometheus.CounterVec
	extractionsTotal  *prometheus.CounterVec
	resolutionsTotal  *prometheus.CounterVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// Init registers all Prometheus metrics. Safe to call more than once.
func Init() {
	metricsOnce.Do(func() {
		storeQueriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claudekey_store_queries_total",
				Help: "Total number of OS secret store queries",
			},
			[]string{"service", "outcome"},
		)

		extractionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claudekey_extractions_total",
				Help: "Total number of structured payload extraction attempts",
			},
			[]string{"store", "outcome"},
		)

		resolutionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claudekey_resolutions_total",
				Help: "Total number of credential resolutions by winning source",
			},
			[]string{"source"},
		)

		metricsRegistered = true
	})
}

// RecordStoreQuery records one store query and whether it returned data.
func RecordStoreQuery(service string, found bool) {
	if !metricsRegistered || storeQueriesTotal == nil {
		return
	}
	outcome := "miss"
	if found {
		outcome = "hit"
	}
	storeQueriesTotal.WithLabelValues(service, outcome).Inc()
}

// RecordExtraction records the outcome of a structured extraction attempt.
// Outcome is one of "matched", "unmatched", or "parse_error".
func RecordExtraction(store, outcome string) {
	if !metricsRegistered || extractionsTotal == nil {
		return
	}
	extractionsTotal.WithLabelValues(store, outcome).Inc()
}

// RecordResolution records which source won a resolution.
// Source is one of "environment", "keychain", or "none".
func RecordResolution(source string) {
	if !metricsRegistered || resolutionsTotal == nil {
		return
	}
	resolutionsTotal.WithLabelValues(source).Inc()
}
