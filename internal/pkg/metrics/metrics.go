package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchverify_source_fetch_total",
		Help: "Source fetches by outcome.",
	}, []string{"source", "result"}) // result: ok, error

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchverify_source_cache_hits_total",
		Help: "Fetches served from the short-lived response cache.",
	}, []string{"source"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchverify_aggregation_duration_seconds",
		Help:    "Wall time of one aggregation run.",
		Buckets: prometheus.DefBuckets,
	})

	GroupsPerRun = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchverify_groups_per_run",
		Help:    "Fixture groups produced per aggregation run.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
)
