// Package idgen generates match identifiers. ULIDs are used rather than
// random UUIDs because they sort lexically by creation time, which reads
// back naturally from an append-only journal.
package idgen

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// MatchIDGenerator produces fresh, monotonically-sortable match ids. It is
// safe for concurrent use; the tick scheduler calls it with the queue lock
// held, but other callers (such as tests) may not hold any lock.
type MatchIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewMatchIDGenerator() *MatchIDGenerator {
	source := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &MatchIDGenerator{entropy: ulid.Monotonic(source, 0)}
}

// New returns a fresh ulid string. It satisfies the `func() string` shape
// MatchBuilder.Build expects for its injected id source.
func (g *MatchIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
