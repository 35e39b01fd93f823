// Package metrics exposes the engine's Prometheus gauges/counters, trimmed
// from the broader platform's prometheus.go to the matchmaking surface:
// queue size per region and per-match skill/wait observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

var (
	QueueSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "matchforge_queue_size",
			Help: "Current matchmaking queue size per region.",
		},
		[]string{"region"},
	)

	MatchesFormedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchforge_matches_formed_total",
			Help: "Total matches formed, per region.",
		},
		[]string{"region"},
	)

	MatchAverageMMR = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchforge_match_average_mmr",
			Help:    "Average skill of a formed match's ten players.",
			Buckets: prometheus.LinearBuckets(500, 250, 10),
		},
		[]string{"region"},
	)

	MatchSkillSpread = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchforge_match_skill_spread",
			Help:    "max(mmr) - min(mmr) of a formed match's ten players.",
			Buckets: prometheus.LinearBuckets(0, 50, 10),
		},
		[]string{"region"},
	)

	MatchAverageWaitSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchforge_match_average_wait_seconds",
			Help:    "Average wait, in seconds, of a formed match's ten players.",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"region"},
	)
)

// Sink adapts the promauto collectors above to jobs.engineMetricsSink
// without the app/jobs package depending on Prometheus directly.
type Sink struct{}

func NewSink() Sink { return Sink{} }

func (Sink) ObserveQueueSizes(sizes map[entities.Region]int) {
	for region, size := range sizes {
		QueueSize.WithLabelValues(string(region)).Set(float64(size))
	}
}

func (Sink) ObserveMatch(region entities.Region, m entities.Metrics) {
	r := string(region)
	MatchesFormedTotal.WithLabelValues(r).Inc()
	MatchAverageMMR.WithLabelValues(r).Observe(m.AverageMMR)
	MatchSkillSpread.WithLabelValues(r).Observe(float64(m.MaxMMR - m.MinMMR))
	MatchAverageWaitSeconds.WithLabelValues(r).Observe(float64(m.AverageWait) / 1000)
}
