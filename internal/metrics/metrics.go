// Package metrics defines the Prometheus instruments for the vote pipeline
// and the post snapshot cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "breadit"

// VoteMetrics holds instruments for the vote reconciliation pipeline.
type VoteMetrics struct {
	VotesProcessed     *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
}

// NewVoteMetrics creates and registers vote pipeline metrics on the given registry.
func NewVoteMetrics(reg prometheus.Registerer) *VoteMetrics {
	m := &VoteMetrics{
		VotesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_processed_total",
			Help:      "Total number of vote requests processed, by outcome.",
		}, []string{"outcome"}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "votes_processing_duration_seconds",
			Help:      "Duration of vote reconciliation in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
	}

	reg.MustRegister(m.VotesProcessed, m.ProcessingDuration)
	return m
}

// Vote reconciliation outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeSwitched = "switched"
	OutcomeToggled  = "toggled_off"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// CacheMetrics holds instruments for the post snapshot cache.
type CacheMetrics struct {
	Hits        prometheus.Counter
	Misses      prometheus.Counter
	Writes      prometheus.Counter
	WriteErrors prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_cache_hits_total",
			Help:      "Total number of post snapshot cache hits.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_cache_misses_total",
			Help:      "Total number of post snapshot cache misses.",
		}),
		Writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_cache_writes_total",
			Help:      "Total number of post snapshot cache writes.",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_cache_write_errors_total",
			Help:      "Total number of failed post snapshot cache writes.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Writes, m.WriteErrors)
	return m
}

// NewRegistry creates a registry preloaded with the standard process and Go
// runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
