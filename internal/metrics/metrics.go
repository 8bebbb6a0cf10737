// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's counters. A single instance is created at
// startup and injected into the services that record to it.
type Metrics struct {
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	ArticlesSkipped prometheus.Counter
	Summaries       *prometheus.CounterVec
}

// New registers the engine counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "feed_engine_cache_hits_total",
			Help: "Feed requests served from the article cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "feed_engine_cache_misses_total",
			Help: "Feed requests that fell through to the origin fetch.",
		}),
		ArticlesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "feed_engine_articles_skipped_total",
			Help: "Articles dropped from a batch due to per-article failures.",
		}),
		Summaries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feed_engine_summaries_total",
			Help: "Summarization results by mode (cache, ai, fallback).",
		}, []string{"mode"}),
	}
}
