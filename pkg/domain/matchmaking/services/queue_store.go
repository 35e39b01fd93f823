package services

import (
	"sync"

	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// QueueStore is the guarded mapping from player identity to queue entry.
// One mutex covers every operation, including the match builder's scan
// (see MatchBuilder.Build, invoked under Lock by the tick scheduler): the
// design deliberately trades lock-free throughput for a builder that can
// treat the queue as a stable snapshot for the duration of one call.
type QueueStore struct {
	mu      sync.Mutex
	entries map[string]*entities.QueueEntry
	// order preserves insertion order per identity, satisfying the
	// "deterministic iteration order" requirement the builder depends on
	// for reproducible tie-breaking.
	order []string
}

func NewQueueStore() *QueueStore {
	return &QueueStore{
		entries: make(map[string]*entities.QueueEntry),
	}
}

// Lock and Unlock expose the store's mutex directly so the tick scheduler
// can hold it across a builder invocation plus the resulting removal, per
// the single coarse-lock design.
func (q *QueueStore) Lock()   { q.mu.Lock() }
func (q *QueueStore) Unlock() { q.mu.Unlock() }

// Enqueue inserts a new entry with queuedAt = now. Caller must not hold the
// lock. Fails with ErrAlreadyQueued if the identity is already present.
func (q *QueueStore) Enqueue(player entities.Player, now int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.entries[player.ID]; exists {
		return common.NewErrAlreadyQueued(player.ID)
	}

	q.entries[player.ID] = &entities.QueueEntry{Player: player, QueuedAt: now}
	q.order = append(q.order, player.ID)
	return nil
}

// Cancel removes the entry for id, returning whether it was present. Absence
// is not an error.
func (q *QueueStore) Cancel(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cancelLocked(id)
}

func (q *QueueStore) cancelLocked(id string) bool {
	if _, exists := q.entries[id]; !exists {
		return false
	}
	delete(q.entries, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveLocked removes a set of identities. Caller must already hold the
// lock (via Lock()); used by the tick scheduler to commit a builder's
// removal set.
func (q *QueueStore) RemoveLocked(ids []string) {
	for _, id := range ids {
		q.cancelLocked(id)
	}
}

// SnapshotLocked returns the live entries in insertion order. Caller must
// hold the lock; this is the view the match builder searches over. It is
// named "Locked" to make call sites that skip Lock() stand out.
func (q *QueueStore) SnapshotLocked() []*entities.QueueEntry {
	out := make([]*entities.QueueEntry, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.entries[id])
	}
	return out
}

// Snapshot produces an observable copy of all entries with their wait
// durations, for metrics/telemetry. Unlike SnapshotLocked it acquires the
// lock itself and is safe to call concurrently with everything else.
func (q *QueueStore) Snapshot(now int64) []entities.QueueSnapshotEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]entities.QueueSnapshotEntry, 0, len(q.order))
	for _, id := range q.order {
		e := q.entries[id]
		out = append(out, entities.QueueSnapshotEntry{
			ID:         e.Player.ID,
			Region:     e.Player.Region,
			MMR:        e.Player.MMR,
			PingNA:     e.Player.PingNA,
			PingEU:     e.Player.PingEU,
			PingASIA:   e.Player.PingASIA,
			WaitedSecs: e.WaitMillis(now) / 1000,
		})
	}
	return out
}

// SizeByRegionLocked returns the current queue size per region, for EngineMetrics.
// Caller must hold the lock.
func (q *QueueStore) SizeByRegionLocked() map[entities.Region]int {
	sizes := map[entities.Region]int{
		entities.RegionNA:   0,
		entities.RegionEU:   0,
		entities.RegionASIA: 0,
	}
	for _, id := range q.order {
		sizes[q.entries[id].Player.Region]++
	}
	return sizes
}
