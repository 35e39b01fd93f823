// Package usecase wires the matchmaking domain services behind the inbound
// ports transports depend on, in the validate-then-log-then-exec shape this
// codebase's usecases follow.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	in "github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"
)

// MatchmakingEngine implements in.QueueCommandHandler and
// in.QueueQueryHandler on top of the queue store, delivery buffer, and tick
// scheduler. It is the single object the transport layer depends on.
type MatchmakingEngine struct {
	queue   *services.QueueStore
	buffer  *services.DeliveryBuffer
	metrics metricsSource
}

// metricsSource is satisfied by *jobs.TickScheduler; kept as a narrow
// interface here so this package never imports pkg/app/jobs.
type metricsSource interface {
	MatchesPerRegion() map[entities.Region]int
	LastMatch() entities.Metrics
}

func NewMatchmakingEngine(queue *services.QueueStore, buffer *services.DeliveryBuffer, metrics metricsSource) *MatchmakingEngine {
	return &MatchmakingEngine{queue: queue, buffer: buffer, metrics: metrics}
}

var _ in.QueueCommandHandler = (*MatchmakingEngine)(nil)
var _ in.QueueQueryHandler = (*MatchmakingEngine)(nil)

func (e *MatchmakingEngine) Enqueue(ctx context.Context, cmd in.EnqueueCommand) error {
	if err := cmd.Validate(); err != nil {
		slog.WarnContext(ctx, "enqueue rejected", "player_id", cmd.Player.ID, "error", err)
		return err
	}

	if err := e.queue.Enqueue(cmd.Player, time.Now().UnixNano()); err != nil {
		slog.WarnContext(ctx, "enqueue failed", "player_id", cmd.Player.ID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "player enqueued", "player_id", cmd.Player.ID, "region", cmd.Player.Region, "mmr", cmd.Player.MMR)
	return nil
}

func (e *MatchmakingEngine) Cancel(ctx context.Context, cmd in.CancelCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		slog.WarnContext(ctx, "cancel rejected", "player_id", cmd.PlayerID, "error", err)
		return false, err
	}

	removed := e.queue.Cancel(cmd.PlayerID)
	slog.InfoContext(ctx, "cancel processed", "player_id", cmd.PlayerID, "removed", removed)
	return removed, nil
}

func (e *MatchmakingEngine) Snapshot(ctx context.Context) []entities.QueueSnapshotEntry {
	return e.queue.Snapshot(time.Now().UnixNano())
}

func (e *MatchmakingEngine) Metrics(ctx context.Context) entities.EngineMetrics {
	e.queue.Lock()
	sizes := e.queue.SizeByRegionLocked()
	last := e.metrics.LastMatch()
	matches := e.metrics.MatchesPerRegion()
	e.queue.Unlock()

	return entities.EngineMetrics{
		QueueSizePerRegion:   sizes,
		MatchesPerRegion:     matches,
		LastMatchAverageMMR:  last.AverageMMR,
		LastMatchMMRSpread:   last.MaxMMR - last.MinMMR,
		LastMatchAvgWaitSecs: float64(last.AverageWait) / 1000,
	}
}

func (e *MatchmakingEngine) Drain(ctx context.Context, playerID string) []entities.Match {
	return e.buffer.Drain(playerID)
}
