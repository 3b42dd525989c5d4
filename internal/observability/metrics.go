// Package observability provides metrics and tracing for the feed backend.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations counts document store operations by collection and kind.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mockbook_store_operations_total",
		Help: "Total number of document store operations by collection and operation",
	}, []string{"collection", "operation"})

	// ResolutionFailures counts feed item resolutions aborted by a dangling
	// user reference.
	ResolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mockbook_resolution_failures_total",
		Help: "Total number of feed item resolutions aborted by a missing user document",
	})

	// AuthorizationRejections counts mutations rejected by the authorization
	// gate, by operation.
	AuthorizationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mockbook_authorization_rejections_total",
		Help: "Total number of mutations rejected because the actor did not match the required owner",
	}, []string{"operation"})
)
