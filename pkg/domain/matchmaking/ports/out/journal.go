// Package out holds outbound port contracts the matchmaking engine depends
// on but does not implement, following this codebase's ports/out repository
// convention.
package out

import (
	"context"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// MatchJournal is the durable, advisory record of formed matches. Append
// failures are logged by the caller and never abort a tick: the journal is
// a record, not a source of truth (the in-memory match/outbox is).
type MatchJournal interface {
	Append(ctx context.Context, match entities.Match) error
}
