// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated tracks products minted onto the ledger
	ProductsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chaintrace_products_created_total",
			Help: "Total number of products created",
		},
	)

	// TransitionsTotal tracks successful custody transitions by resulting stage
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_transitions_total",
			Help: "Total number of successful stage transitions",
		},
		[]string{"stage"},
	)

	// TransitionFailures tracks rejected transitions by failure kind
	TransitionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_transition_failures_total",
			Help: "Total number of rejected stage transitions",
		},
		[]string{"kind"},
	)

	// VerificationsTotal tracks authenticity checks by verdict
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_verifications_total",
			Help: "Total number of authenticity verifications",
		},
		[]string{"result"},
	)

	// ScanCodeCacheHits tracks resolution of scan codes from the cache
	ScanCodeCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_scan_code_cache_total",
			Help: "Scan code cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
