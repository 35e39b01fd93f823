package services

import (
	"sync"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// DeliveryBuffer is the per-player pending-match outbox drained by the
// stream transport. It serialises on its own lock, acquired by the tick
// scheduler after the queue lock (queue before buffer, always) to preclude
// deadlock against any future caller that might need both.
type DeliveryBuffer struct {
	mu      sync.Mutex
	pending map[string][]entities.Match
}

func NewDeliveryBuffer() *DeliveryBuffer {
	return &DeliveryBuffer{pending: make(map[string][]entities.Match)}
}

// Push appends match to playerID's outbox.
func (b *DeliveryBuffer) Push(playerID string, match entities.Match) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[playerID] = append(b.pending[playerID], match)
}

// Drain atomically returns and clears playerID's outbox. Destructive: a
// client that disconnects before draining loses the queued matches, which
// is acceptable because the journal is the durable record.
func (b *DeliveryBuffer) Drain(playerID string) []entities.Match {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending[playerID]
	delete(b.pending, playerID)
	return out
}
