package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"
)

func seedEntry(id string, mmr int, region entities.Region, pingNA, pingEU, pingASIA int, queuedAt int64) *entities.QueueEntry {
	return &entities.QueueEntry{
		Player: entities.Player{
			ID:       id,
			MMR:      mmr,
			Region:   region,
			PingNA:   pingNA,
			PingEU:   pingEU,
			PingASIA: pingASIA,
		},
		QueuedAt: queuedAt,
	}
}

func tenFreshNAPlayers(baseMMR int, now int64) []*entities.QueueEntry {
	out := make([]*entities.QueueEntry, 0, 10)
	for i := 0; i < 10; i++ {
		out = append(out, seedEntry(
			"p"+string(rune('a'+i)),
			baseMMR+i,
			entities.RegionNA,
			20, 200, 200,
			now,
		))
	}
	return out
}

func newMatchID(fixed string) func() string {
	return func() string { return fixed }
}

func TestBuild_FewerThanTenPlayers_Fails(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)

	snapshot := tenFreshNAPlayers(1000, now)[:9]

	_, _, _, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("m1"))

	assert.False(t, ok)
}

func TestBuild_TenTightPlayers_FormsMatch(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)

	snapshot := tenFreshNAPlayers(1000, now)

	match, metrics, removal, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("match-1"))

	require.True(t, ok)
	assert.Equal(t, "match-1", match.ID)
	assert.Equal(t, entities.RegionNA, match.Region)
	assert.Len(t, match.Players, 10)
	assert.Len(t, match.TeamA(), 5)
	assert.Len(t, match.TeamB(), 5)
	assert.Len(t, removal, 10)
	assert.InDelta(t, 1004.5, metrics.AverageMMR, 0.01)
}

func TestBuild_TeamsBalancedBySkillSum(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)

	snapshot := tenFreshNAPlayers(1000, now)

	match, _, _, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("match-1"))
	require.True(t, ok)

	var sumA, sumB int
	for _, p := range match.TeamA() {
		sumA += p.MMR
	}
	for _, p := range match.TeamB() {
		sumB += p.MMR
	}

	assert.LessOrEqual(t, abs(sumA-sumB), 5, "teams should be skill-balanced by running-sum assignment")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestBuild_SkillWindowTooWide_NoMatch(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)

	snapshot := make([]*entities.QueueEntry, 0, 10)
	for i := 0; i < 10; i++ {
		mmr := 1000 + i*200 // spread of 1800, far beyond MaxAllowedMMRDiff(200) and MaxMMRWindow(500)
		snapshot = append(snapshot, seedEntry("p"+string(rune('a'+i)), mmr, entities.RegionNA, 20, 200, 200, now))
	}

	_, _, _, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("m"))

	assert.False(t, ok)
}

func TestBuild_LongWaitRelaxesSkillWindow(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)
	// queued 60s ago: relaxSecs = (60000-5000)/1000 = 55
	queuedAt := now - 60_000*int64(1e6)

	snapshot := make([]*entities.QueueEntry, 0, 10)
	for i := 0; i < 10; i++ {
		mmr := 1000 + i*40 // spread of 360, beyond base MaxAllowedMMRDiff(200) but within MaxRelaxedMMRDiff(800)
		snapshot = append(snapshot, seedEntry("p"+string(rune('a'+i)), mmr, entities.RegionNA, 20, 200, 200, queuedAt))
	}

	_, _, removal, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("m"))

	require.True(t, ok)
	assert.Len(t, removal, 10)
}

func TestBuild_OutOfRegionPlayerExcludedUntilWaitLongEnough(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)

	// Nine fresh NA-home players plus one EU-home player with a poor NA ping
	// and a short wait: should be excluded, leaving only nine eligible.
	snapshot := tenFreshNAPlayers(1000, now)[:9]
	farPlayer := seedEntry("far", 1005, entities.RegionEU, 200, 10, 200, now)
	snapshot = append(snapshot, farPlayer)

	_, _, _, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("m"))

	assert.False(t, ok, "far player's short wait should keep the region ineligible")
}

func TestBuild_PicksHighestAverageWaitCandidate(t *testing.T) {
	cfg := config.Default()
	now := int64(1_000_000_000)

	// Older group should be preferred over a newer, equally tight group.
	// The two groups use disjoint MMR ranges so neither group's skill
	// window can pull in members of the other.
	older := tenFreshNAPlayers(1000, now-10_000*int64(1e6))
	for i, e := range older {
		e.Player.ID = "old" + string(rune('a'+i))
	}
	newer := tenFreshNAPlayers(2000, now)
	for i, e := range newer {
		e.Player.ID = "new" + string(rune('a'+i))
	}

	snapshot := append(append([]*entities.QueueEntry{}, older...), newer...)

	_, metrics, removal, ok := services.NewMatchBuilder().Build(snapshot, cfg, entities.RegionNA, now, newMatchID("m"))

	require.True(t, ok)
	assert.Equal(t, int64(10_000), metrics.AverageWait)
	for _, id := range removal {
		assert.Contains(t, id, "old")
	}
}
