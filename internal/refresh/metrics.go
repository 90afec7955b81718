package refresh

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the refresh engine.
var (
	itemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refresh_items_total",
		Help: "Work items by terminal outcome",
	}, []string{"outcome"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refresh_retries_total",
		Help: "Retry attempts scheduled across all sessions",
	})

	retryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refresh_retry_exhausted_total",
		Help: "Work items that failed after exhausting all attempts",
	})

	backoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refresh_backoff_seconds",
		Help:    "Backoff duration before retry attempts",
		Buckets: []float64{0.5, 1, 2, 5, 10},
	})

	sessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refresh_session_duration_seconds",
		Help:    "Wall-clock duration of refresh sessions",
		Buckets: []float64{0.5, 1, 5, 15, 60, 120},
	})
)
