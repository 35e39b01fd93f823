package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintet-io/matchforge/pkg/domain/common"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"
)

func TestQueueStore_EnqueueThenCancel(t *testing.T) {
	q := services.NewQueueStore()

	err := q.Enqueue(entities.Player{ID: "p1", Region: entities.RegionNA, MMR: 1000}, 100)
	require.NoError(t, err)

	assert.True(t, q.Cancel("p1"))
	assert.False(t, q.Cancel("p1"), "second cancel of the same id is a no-op, not an error")
}

func TestQueueStore_DuplicateEnqueueFails(t *testing.T) {
	q := services.NewQueueStore()

	require.NoError(t, q.Enqueue(entities.Player{ID: "p1", Region: entities.RegionNA}, 100))

	err := q.Enqueue(entities.Player{ID: "p1", Region: entities.RegionNA}, 200)
	require.Error(t, err)
	assert.True(t, common.IsAlreadyQueuedError(err))
}

func TestQueueStore_SnapshotPreservesInsertionOrder(t *testing.T) {
	q := services.NewQueueStore()

	require.NoError(t, q.Enqueue(entities.Player{ID: "a", Region: entities.RegionNA}, 100))
	require.NoError(t, q.Enqueue(entities.Player{ID: "b", Region: entities.RegionNA}, 200))
	require.NoError(t, q.Enqueue(entities.Player{ID: "c", Region: entities.RegionNA}, 300))

	q.Lock()
	snapshot := q.SnapshotLocked()
	q.Unlock()

	require.Len(t, snapshot, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{snapshot[0].Player.ID, snapshot[1].Player.ID, snapshot[2].Player.ID})
}

func TestQueueStore_SizeByRegion(t *testing.T) {
	q := services.NewQueueStore()

	require.NoError(t, q.Enqueue(entities.Player{ID: "a", Region: entities.RegionNA}, 100))
	require.NoError(t, q.Enqueue(entities.Player{ID: "b", Region: entities.RegionEU}, 100))
	require.NoError(t, q.Enqueue(entities.Player{ID: "c", Region: entities.RegionNA}, 100))

	q.Lock()
	sizes := q.SizeByRegionLocked()
	q.Unlock()

	assert.Equal(t, 2, sizes[entities.RegionNA])
	assert.Equal(t, 1, sizes[entities.RegionEU])
	assert.Equal(t, 0, sizes[entities.RegionASIA])
}

func TestQueueStore_RemoveLocked(t *testing.T) {
	q := services.NewQueueStore()

	require.NoError(t, q.Enqueue(entities.Player{ID: "a", Region: entities.RegionNA}, 100))
	require.NoError(t, q.Enqueue(entities.Player{ID: "b", Region: entities.RegionNA}, 100))

	q.Lock()
	q.RemoveLocked([]string{"a"})
	snapshot := q.SnapshotLocked()
	q.Unlock()

	require.Len(t, snapshot, 1)
	assert.Equal(t, "b", snapshot[0].Player.ID)
}
