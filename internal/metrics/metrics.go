package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttemptsTotal tracks datastore fetch attempts per logical key
	FetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchboard_fetch_attempts_total",
			Help: "Total number of datastore fetch attempts",
		},
		[]string{"key"},
	)

	// FetchErrorsTotal tracks fetch errors by classification
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchboard_fetch_errors_total",
			Help: "Total number of fetch errors",
		},
		[]string{"key", "class"},
	)

	// CacheFallbacksTotal tracks degraded responses served from the snapshot cache
	CacheFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchboard_cache_fallbacks_total",
			Help: "Total number of responses served from the offline cache",
		},
		[]string{"key", "reason"},
	)

	// ProbesTotal tracks reachability probe outcomes
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchboard_probes_total",
			Help: "Total number of reachability probes",
		},
		[]string{"result"},
	)

	// RecommendationsServedTotal tracks recommendation list requests
	RecommendationsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchboard_recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"degraded"},
	)

	// MatchScoreDistribution tracks computed match scores
	MatchScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matchboard_match_score",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// DatastoreLatency tracks datastore read latency
	DatastoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchboard_datastore_latency_seconds",
			Help:    "Datastore read latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
