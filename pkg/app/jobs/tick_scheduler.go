package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/out"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"
)

// TickScheduler is the single long-lived matchmaking worker. Every
// tick_interval_ms it walks the fixed region order {NA, EU, ASIA} and drains
// as many matches as the builder can produce from each, grounded on this
// codebase's ticker-driven job shape (compare the prize-distribution job
// this was adapted from).
type TickScheduler struct {
	queue    *services.QueueStore
	buffer   *services.DeliveryBuffer
	builder  *services.MatchBuilder
	journal  out.MatchJournal
	newID    func() string
	cfg      config.Config
	ticker   *time.Ticker
	metrics  engineMetricsSink

	mu             sync.Mutex
	matchesPerRegion map[entities.Region]int
	lastMatch        entities.Metrics
}

// engineMetricsSink lets an infra exporter (Prometheus) observe every tick
// without the scheduler importing an infra package directly.
type engineMetricsSink interface {
	ObserveQueueSizes(sizes map[entities.Region]int)
	ObserveMatch(region entities.Region, m entities.Metrics)
}

func NewTickScheduler(queue *services.QueueStore, buffer *services.DeliveryBuffer, builder *services.MatchBuilder, journal out.MatchJournal, newID func() string, cfg config.Config, metrics engineMetricsSink) *TickScheduler {
	return &TickScheduler{
		queue:            queue,
		buffer:           buffer,
		builder:          builder,
		journal:          journal,
		newID:            newID,
		cfg:              cfg,
		ticker:           time.NewTicker(cfg.TickInterval()),
		metrics:          metrics,
		matchesPerRegion: make(map[entities.Region]int),
	}
}

// Run starts the scheduler's loop. It returns when ctx is cancelled,
// exiting within one tick interval plus the time to finish the current
// tick, per the run-flag cooperative-stop contract.
func (s *TickScheduler) Run(ctx context.Context) {
	slog.InfoContext(ctx, "tick scheduler started", "interval_ms", s.cfg.TickIntervalMS)
	defer s.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "tick scheduler stopped")
			return
		case now := <-s.ticker.C:
			s.runTick(ctx, now.UnixNano())
		}
	}
}

func (s *TickScheduler) runTick(ctx context.Context, now int64) {
	s.queue.Lock()
	defer s.queue.Unlock()

	for _, region := range entities.Regions {
		s.drainRegion(ctx, region, now)
	}

	sizes := s.queue.SizeByRegionLocked()
	if s.metrics != nil {
		s.metrics.ObserveQueueSizes(sizes)
	}
}

func (s *TickScheduler) drainRegion(ctx context.Context, region entities.Region, now int64) {
	for {
		snapshot := s.queue.SnapshotLocked()
		match, metrics, removal, ok := s.builder.Build(snapshot, s.cfg, region, now, s.newID)
		if !ok {
			return
		}

		s.queue.RemoveLocked(removal)

		for _, p := range match.Players {
			s.buffer.Push(p.ID, match)
		}

		if err := s.journal.Append(ctx, match); err != nil {
			slog.ErrorContext(ctx, "journal append failed, match still delivered in memory",
				"match_id", match.ID, "region", region, "error", err)
		}

		s.mu.Lock()
		s.matchesPerRegion[region]++
		s.lastMatch = metrics
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.ObserveMatch(region, metrics)
		}

		slog.InfoContext(ctx, "match formed",
			"match_id", match.ID, "region", region,
			"avg_mmr", metrics.AverageMMR, "spread", metrics.MaxMMR-metrics.MinMMR,
			"avg_wait_ms", metrics.AverageWait)
	}
}

// MatchesPerRegion returns a copy of the process-wide match counters.
func (s *TickScheduler) MatchesPerRegion() map[entities.Region]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[entities.Region]int, len(s.matchesPerRegion))
	for r, n := range s.matchesPerRegion {
		out[r] = n
	}
	return out
}

// LastMatch returns a copy of the most recently formed match's metrics.
func (s *TickScheduler) LastMatch() entities.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMatch
}
