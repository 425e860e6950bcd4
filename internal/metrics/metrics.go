// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripledger_http_requests_total",
		Help: "HTTP requests by method, path, and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripledger_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	balanceComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripledger_balance_computations_total",
		Help: "Balance/settlement engine invocations.",
	})

	settlementResiduals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripledger_settlement_residuals_total",
		Help: "Settlement plans whose creditor/debtor sums diverged beyond the epsilon.",
	})
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path, status string, duration time.Duration) {
	requestsTotal.WithLabelValues(method, path, status).Inc()
	requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveBalanceComputation records one engine run; residual marks whether the
// settlement planner reported an input inconsistency.
func ObserveBalanceComputation(residual bool) {
	balanceComputations.Inc()
	if residual {
		settlementResiduals.Inc()
	}
}
