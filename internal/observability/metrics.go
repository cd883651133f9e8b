package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts posts and replies written, labelled by kind.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total number of posts and replies created",
	}, []string{"kind"})

	// EdgeToggles counts like and follow toggles by edge type and direction.
	EdgeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_edge_toggles_total",
		Help: "Total number of like/follow toggles by edge type and action",
	}, []string{"edge", "action"})

	// IdentitySyncs counts identity provider sync operations by kind and outcome.
	IdentitySyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_identity_syncs_total",
		Help: "Total identity sync operations by kind and outcome",
	}, []string{"kind", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
