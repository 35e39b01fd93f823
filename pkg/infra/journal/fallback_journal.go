package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// FallbackJournal tries the primary sink first and falls back to the
// secondary on failure, logging the primary's failure. It returns an error
// only when no sink accepted the match; the tick scheduler logs that error
// and the tick continues regardless of how many sinks failed.
type FallbackJournal struct {
	primary   *KafkaJournal
	secondary *FileJournal
}

func NewFallbackJournal(primary *KafkaJournal, secondary *FileJournal) *FallbackJournal {
	return &FallbackJournal{primary: primary, secondary: secondary}
}

func (j *FallbackJournal) Append(ctx context.Context, match entities.Match) error {
	if j.primary != nil {
		if err := j.primary.Append(ctx, match); err == nil {
			return nil
		} else {
			slog.WarnContext(ctx, "kafka journal append failed, falling back to file", "match_id", match.ID, "error", err)
		}
	}

	if j.secondary != nil {
		if err := j.secondary.Append(ctx, match); err != nil {
			return fmt.Errorf("file journal append failed: %w", err)
		}
		return nil
	}

	return fmt.Errorf("no journal sink available for match %s", match.ID)
}

// Ping reports whether the Kafka primary is reachable. It returns an error
// if no Kafka primary is configured, since there is nothing to check.
func (j *FallbackJournal) Ping(ctx context.Context) error {
	if j.primary == nil {
		return fmt.Errorf("no kafka primary configured")
	}
	return j.primary.Ping(ctx)
}
