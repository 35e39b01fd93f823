package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintet-io/matchforge/pkg/app/usecase"
	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"
)

type fakeMetricsSource struct {
	matches map[entities.Region]int
	last    entities.Metrics
}

func (f fakeMetricsSource) MatchesPerRegion() map[entities.Region]int { return f.matches }
func (f fakeMetricsSource) LastMatch() entities.Metrics               { return f.last }

func newEngine() *usecase.MatchmakingEngine {
	queue := services.NewQueueStore()
	buffer := services.NewDeliveryBuffer()
	metrics := fakeMetricsSource{
		matches: map[entities.Region]int{entities.RegionNA: 3},
		last:    entities.Metrics{AverageMMR: 1200, MinMMR: 1100, MaxMMR: 1300, AverageWait: 4000},
	}
	return usecase.NewMatchmakingEngine(queue, buffer, metrics)
}

func TestMatchmakingEngine_EnqueueRejectsInvalidInput(t *testing.T) {
	engine := newEngine()

	err := engine.Enqueue(context.Background(), in.EnqueueCommand{Player: entities.Player{ID: ""}})

	require.Error(t, err)
	assert.True(t, common.IsInvalidInputError(err))
}

func TestMatchmakingEngine_EnqueueThenSnapshot(t *testing.T) {
	engine := newEngine()

	err := engine.Enqueue(context.Background(), in.EnqueueCommand{
		Player: entities.Player{ID: "p1", Region: entities.RegionNA, MMR: 1200},
	})
	require.NoError(t, err)

	snapshot := engine.Snapshot(context.Background())
	require.Len(t, snapshot, 1)
	assert.Equal(t, "p1", snapshot[0].ID)
}

func TestMatchmakingEngine_DuplicateEnqueueFails(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()

	cmd := in.EnqueueCommand{Player: entities.Player{ID: "p1", Region: entities.RegionNA, MMR: 1200}}
	require.NoError(t, engine.Enqueue(ctx, cmd))

	err := engine.Enqueue(ctx, cmd)
	require.Error(t, err)
	assert.True(t, common.IsAlreadyQueuedError(err))
}

func TestMatchmakingEngine_CancelUnknownPlayerReturnsFalse(t *testing.T) {
	engine := newEngine()

	removed, err := engine.Cancel(context.Background(), in.CancelCommand{PlayerID: "ghost"})

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMatchmakingEngine_MetricsAssemblesFromQueueAndScheduler(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()

	require.NoError(t, engine.Enqueue(ctx, in.EnqueueCommand{
		Player: entities.Player{ID: "p1", Region: entities.RegionNA, MMR: 1200},
	}))

	metrics := engine.Metrics(ctx)

	assert.Equal(t, 1, metrics.QueueSizePerRegion[entities.RegionNA])
	assert.Equal(t, 3, metrics.MatchesPerRegion[entities.RegionNA])
	assert.Equal(t, 1200.0, metrics.LastMatchAverageMMR)
	assert.Equal(t, 200, metrics.LastMatchMMRSpread)
}
