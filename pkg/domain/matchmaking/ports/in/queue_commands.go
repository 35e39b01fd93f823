// Package in holds the inbound command contracts transport handlers depend
// on, grounded on this codebase's usual ports/in command-handler shape.
package in

import (
	"context"

	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// EnqueueCommand is the validated input to Enqueue. Validate fills in no
// defaults (unlike session-based command shapes elsewhere in this codebase)
// because every field here has match-formation significance; a missing ping
// is a legitimate "use the legacy fallback" signal, not an omission to
// paper over.
type EnqueueCommand struct {
	Player entities.Player
}

func (c EnqueueCommand) Validate() error {
	if c.Player.ID == "" {
		return common.NewErrInvalidInput("player id must not be empty")
	}
	switch c.Player.Region {
	case entities.RegionNA, entities.RegionEU, entities.RegionASIA:
	default:
		return common.NewErrInvalidInput("player region must be one of NA, EU, ASIA")
	}
	if c.Player.MMR < 0 {
		return common.NewErrInvalidInput("player mmr must not be negative")
	}
	return nil
}

// CancelCommand is the validated input to Cancel.
type CancelCommand struct {
	PlayerID string
}

func (c CancelCommand) Validate() error {
	if c.PlayerID == "" {
		return common.NewErrInvalidInput("player id must not be empty")
	}
	return nil
}

// QueueCommandHandler is the inbound port the REST/CLI/simulator transports
// call into; it is implemented by the matchmaking engine's facade.
type QueueCommandHandler interface {
	Enqueue(ctx context.Context, cmd EnqueueCommand) error
	Cancel(ctx context.Context, cmd CancelCommand) (bool, error)
}

// QueueQueryHandler is the inbound port for read-only views: the queue
// snapshot, the engine metrics snapshot, and per-player match delivery.
type QueueQueryHandler interface {
	Snapshot(ctx context.Context) []entities.QueueSnapshotEntry
	Metrics(ctx context.Context) entities.EngineMetrics
	Drain(ctx context.Context, playerID string) []entities.Match
}
