package services

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// MatchBuilder is a pure function over (queue snapshot, config, region,
// now) that proposes at most one match per call. It mutates nothing; the
// tick scheduler commits the removal under the queue lock.
type MatchBuilder struct{}

func NewMatchBuilder() *MatchBuilder {
	return &MatchBuilder{}
}

// candidate is one seed's best ten-window, scored for seed selection.
type candidate struct {
	tightTen   []*entities.QueueEntry
	avgWaitMS  float64
	spread     int
}

// Build attempts to form one match for region out of snapshot. newMatchID is
// called exactly once, only on success, to name the match; injecting it
// keeps Build itself a function of its inputs plus one externally supplied
// identity source, per the core's pure-function contract.
func (b *MatchBuilder) Build(snapshot []*entities.QueueEntry, cfg config.Config, region entities.Region, now int64, newMatchID func() string) (entities.Match, entities.Metrics, []string, bool) {
	if len(snapshot) < 10 {
		return entities.Match{}, entities.Metrics{}, nil, false
	}

	var best *candidate
	for _, seed := range snapshot {
		seedWaitMS := seed.WaitMillis(now)
		if !regionAllowed(seed.Player, seedWaitMS, region, cfg) {
			continue
		}

		relaxSecs := relaxSeconds(seedWaitMS, cfg.MinWaitBeforeMatch)
		skillWindow := capInt(cfg.BaseMMRWindow+cfg.MMRRelaxPerSecond*relaxSecs, cfg.MaxMMRWindow)
		pingWindow := capInt(cfg.MaxPingMS+cfg.PingRelaxPerSecond*relaxSecs, cfg.MaxPingMSCap)

		allowedSpread := cfg.MaxAllowedMMRDiff
		if int(seedWaitMS) > cfg.MinWaitBeforeMatch {
			allowedSpread = capInt(cfg.MaxAllowedMMRDiff+cfg.MMRDiffRelaxPerSecond*relaxSecs, cfg.MaxRelaxedMMRDiff)
		}

		eligible := eligibleSet(snapshot, seed, region, cfg, skillWindow, pingWindow, now)
		if len(eligible) < 10 {
			continue
		}

		sort.Slice(eligible, func(i, j int) bool {
			return eligible[i].Player.MMR < eligible[j].Player.MMR
		})

		tightTen, spread := tightestTen(eligible)
		if spread > allowedSpread {
			continue
		}

		avgWait := averageWaitMS(tightTen, now)
		cand := candidate{tightTen: tightTen, avgWaitMS: avgWait, spread: spread}

		if best == nil || cand.avgWaitMS > best.avgWaitMS ||
			(cand.avgWaitMS == best.avgWaitMS && cand.spread < best.spread) {
			c := cand
			best = &c
		}
	}

	if best == nil {
		return entities.Match{}, entities.Metrics{}, nil, false
	}

	teamA, teamB := balanceTeams(best.tightTen)
	players := make([]entities.Player, 0, 10)
	players = append(players, teamA...)
	players = append(players, teamB...)

	match := entities.Match{
		ID:      newMatchID(),
		Region:  region,
		Players: players,
	}

	removal := make([]string, 0, 10)
	for _, e := range best.tightTen {
		removal = append(removal, e.Player.ID)
	}

	metrics := computeMetrics(best.tightTen, now)

	return match, metrics, removal, true
}

// regionAllowed implements the region-eligibility predicate: a player flows
// freely into regions it pings well to, and into worse regions only after
// waiting proportionally longer.
func regionAllowed(p entities.Player, waitMS int64, r entities.Region, cfg config.Config) bool {
	rank := p.RankIn(r)
	if rank == 0 {
		return true
	}
	if p.EffectivePing(r) < cfg.GoodRegionPingMS {
		return true
	}
	return waitMS >= int64(rank*cfg.CrossRegionStepMS)
}

func relaxSeconds(waitMS int64, minWaitBeforeMatch int) int {
	diff := int(waitMS) - minWaitBeforeMatch
	if diff < 0 {
		return 0
	}
	return diff / 1000
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func eligibleSet(snapshot []*entities.QueueEntry, seed *entities.QueueEntry, region entities.Region, cfg config.Config, skillWindow, pingWindow int, now int64) []*entities.QueueEntry {
	out := make([]*entities.QueueEntry, 0, len(snapshot))
	for _, e := range snapshot {
		if !regionAllowed(e.Player, e.WaitMillis(now), region, cfg) {
			continue
		}
		if abs(e.Player.MMR-seed.Player.MMR) > skillWindow {
			continue
		}
		if e.Player.EffectivePing(region) > pingWindow {
			continue
		}
		out = append(out, e)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// tightestTen returns, over every contiguous ten-window of an
// ascending-skill-sorted slice, the window with minimum (max-min) spread.
func tightestTen(sortedByMMR []*entities.QueueEntry) ([]*entities.QueueEntry, int) {
	bestSpread := -1
	bestStart := 0
	for i := 0; i+10 <= len(sortedByMMR); i++ {
		spread := sortedByMMR[i+9].Player.MMR - sortedByMMR[i].Player.MMR
		if bestSpread == -1 || spread < bestSpread {
			bestSpread = spread
			bestStart = i
		}
	}
	return sortedByMMR[bestStart : bestStart+10], bestSpread
}

func averageWaitMS(entries []*entities.QueueEntry, now int64) float64 {
	waits := make([]float64, len(entries))
	for i, e := range entries {
		waits[i] = float64(e.WaitMillis(now))
	}
	mean, _ := stats.Mean(waits)
	return mean
}

func computeMetrics(entries []*entities.QueueEntry, now int64) entities.Metrics {
	mmrs := make([]float64, len(entries))
	for i, e := range entries {
		mmrs[i] = float64(e.Player.MMR)
	}
	avg, _ := stats.Mean(mmrs)
	min, _ := stats.Min(mmrs)
	max, _ := stats.Max(mmrs)
	avgWait := averageWaitMS(entries, now)

	return entities.Metrics{
		AverageMMR:  avg,
		MinMMR:      int(min),
		MaxMMR:      int(max),
		AverageWait: int64(avgWait),
	}
}

// balanceTeams sorts the chosen ten by descending skill and greedily
// assigns each to the team with the lower running sum, team A on ties,
// stopping a team at five members.
func balanceTeams(entries []*entities.QueueEntry) ([]entities.Player, []entities.Player) {
	ordered := make([]*entities.QueueEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Player.MMR > ordered[j].Player.MMR
	})

	var teamA, teamB []entities.Player
	var sumA, sumB int
	for _, e := range ordered {
		switch {
		case len(teamA) >= 5:
			teamB = append(teamB, e.Player)
			sumB += e.Player.MMR
		case len(teamB) >= 5:
			teamA = append(teamA, e.Player)
			sumA += e.Player.MMR
		case sumA <= sumB:
			teamA = append(teamA, e.Player)
			sumA += e.Player.MMR
		default:
			teamB = append(teamB, e.Player)
			sumB += e.Player.MMR
		}
	}
	return teamA, teamB
}
