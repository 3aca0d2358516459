package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Object store client metrics

// StoreRequestsTotal tracks remote store requests by operation and outcome
var StoreRequestsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_requests_total",
		Help:      "Total number of remote object store requests",
	},
	[]string{"operation", "status"}, // operation: list|read|ping, status: success|error
)

// StoreRequestDuration records remote store request latency
var StoreRequestDuration = promauto.With(Registry).NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_request_duration_seconds",
		Help:      "Remote object store request latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"operation"},
)
