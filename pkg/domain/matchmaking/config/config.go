// Package config defines the matchmaking engine's tuning record. Loading and
// persisting it is an infra concern; this package only owns the value type
// and its defaults.
package config

import "time"

// Config is the immutable set of tuning knobs consumed by the tick scheduler
// and the match builder. It is read-only after process start.
type Config struct {
	TickIntervalMS int `yaml:"tick_interval_ms"`

	MaxPingMS           int `yaml:"max_ping_ms"`
	PingRelaxPerSecond  int `yaml:"ping_relax_per_second"`
	MaxPingMSCap        int `yaml:"max_ping_ms_cap"`
	MinWaitBeforeMatch  int `yaml:"min_wait_before_match_ms"`

	BaseMMRWindow      int `yaml:"base_mmr_window"`
	MMRRelaxPerSecond  int `yaml:"mmr_relax_per_second"`
	MaxMMRWindow       int `yaml:"max_mmr_window"`

	MaxAllowedMMRDiff      int `yaml:"max_allowed_mmr_diff"`
	MMRDiffRelaxPerSecond  int `yaml:"mmr_diff_relax_per_second"`
	MaxRelaxedMMRDiff      int `yaml:"max_relaxed_mmr_diff"`

	GoodRegionPingMS  int `yaml:"good_region_ping_ms"`
	CrossRegionStepMS int `yaml:"cross_region_step_ms"`

	// JournalPath is the fallback file sink, read from matches_path in the
	// configuration file. JournalKafkaTopic is the primary durable sink; it
	// is not read from the file and comes from Default() or the
	// MATCHFORGE_JOURNAL_KAFKA_TOPIC override (see infra/config).
	JournalPath       string `yaml:"matches_path"`
	JournalKafkaTopic string `yaml:"-"`
}

// Default returns the engine's built-in defaults, used whenever a config
// file is absent, fails to parse, or omits a key.
func Default() Config {
	return Config{
		TickIntervalMS: 1000,

		MaxPingMS:          80,
		PingRelaxPerSecond: 0,
		MaxPingMSCap:       80,
		MinWaitBeforeMatch: 5000,

		BaseMMRWindow:     100,
		MMRRelaxPerSecond: 10,
		MaxMMRWindow:      500,

		MaxAllowedMMRDiff:     200,
		MMRDiffRelaxPerSecond: 5,
		MaxRelaxedMMRDiff:     800,

		GoodRegionPingMS:  60,
		CrossRegionStepMS: 10000,

		JournalPath:       "matches.jsonl",
		JournalKafkaTopic: "matchforge.matches.journal",
	}
}

// TickInterval is TickIntervalMS as a time.Duration, for the scheduler.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}
