package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RemoteRequests      *prometheus.CounterVec
	RemoteLatency       *prometheus.HistogramVec
	GuestPagesFetched   prometheus.Counter
	PropertyMerges      *prometheus.CounterVec
	ThumbnailEnsures    *prometheus.CounterVec
	PropagationFailures *prometheus.CounterVec
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RemoteRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ownerrez_requests_total",
			Help:      "The total number of requests sent to the OwnerRez API",
		}, []string{"operation", "status"}),
		RemoteLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ownerrez_request_duration_seconds",
			Help:      "Time taken by OwnerRez API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		GuestPagesFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guest_pages_fetched_total",
			Help:      "The total number of guest pages fetched",
		}),
		PropertyMerges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "property_merge_total",
			Help:      "Property lookups by merge outcome",
		}, []string{"source"}),
		ThumbnailEnsures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thumbnail_ensure_total",
			Help:      "Thumbnail ensure calls by result",
		}, []string{"result"}),
		PropagationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_propagation_failures_total",
			Help:      "Best-effort remote writes that failed",
		}, []string{"operation"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
