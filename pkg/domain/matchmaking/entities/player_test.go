package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

func TestEffectivePing_PrefersRegionalOverLegacy(t *testing.T) {
	p := entities.Player{PingNA: 40, LegacyPing: 999}
	assert.Equal(t, 40, p.EffectivePing(entities.RegionNA))
}

func TestEffectivePing_FallsBackToLegacyWhenRegionalIsZero(t *testing.T) {
	p := entities.Player{PingNA: 0, LegacyPing: 55}
	assert.Equal(t, 55, p.EffectivePing(entities.RegionNA))
}

func TestRankIn_OrdersRegionsByAscendingLatency(t *testing.T) {
	p := entities.Player{PingNA: 20, PingEU: 150, PingASIA: 300}
	assert.Equal(t, 0, p.RankIn(entities.RegionNA))
	assert.Equal(t, 1, p.RankIn(entities.RegionEU))
	assert.Equal(t, 2, p.RankIn(entities.RegionASIA))
}

func TestWaitMillis_ClampsToZeroOnClockSkew(t *testing.T) {
	e := entities.QueueEntry{QueuedAt: 1000}
	assert.Equal(t, int64(0), e.WaitMillis(500))
}

func TestWaitMillis_ComputesElapsedMilliseconds(t *testing.T) {
	e := entities.QueueEntry{QueuedAt: 0}
	assert.Equal(t, int64(1500), e.WaitMillis(1_500_000_000))
}

func TestMatch_TeamSplit(t *testing.T) {
	players := make([]entities.Player, 10)
	for i := range players {
		players[i] = entities.Player{ID: string(rune('a' + i))}
	}
	m := entities.Match{Players: players}

	assert.Len(t, m.TeamA(), 5)
	assert.Len(t, m.TeamB(), 5)
	assert.Equal(t, "a", m.TeamA()[0].ID)
	assert.Equal(t, "f", m.TeamB()[0].ID)
}
