// Package vectorstore provides Prometheus metrics for store operations.
package vectorstore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts store operations.
	// Labels: backend (chromem, qdrant), op, result (success, error)
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecstore",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of vector store operations",
		},
		[]string{"backend", "op", "result"},
	)

	// OperationDuration tracks how long store operations take.
	// Labels: backend, op
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vecstore",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of vector store operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

// observeOp records the outcome and duration of a store operation.
// errp points at the named error return so the deferred call sees the
// final value. Usage:
//
//	defer observeOp(s.Backend(), "query", timeNow(), &err)
func observeOp(backend, op string, start time.Time, errp *error) {
	result := "success"
	if errp != nil && *errp != nil {
		result = "error"
	}
	OperationsTotal.WithLabelValues(backend, op, result).Inc()
	OperationDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
