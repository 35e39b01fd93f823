// Package config loads the matchmaking engine's tuning record from a YAML
// file with environment-variable overrides, grounded on this codebase's
// ioc.EnvironmentConfig pattern (env-first) layered with a file loader the
// operator CLI also uses to persist edits.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	matchconf "github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
)

// Load reads path as YAML into a Config seeded with defaults, so missing
// keys fall back to defaults and unknown keys are ignored by the decoder.
// A read or parse failure is logged and the defaults are returned
// untouched; configuration load failure must never abort startup.
func Load(path string) matchconf.Config {
	cfg := matchconf.Default()

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config file unavailable, using defaults", "path", path, "error", err)
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("config file failed to parse, using defaults", "path", path, "error", err)
		return matchconf.Default()
	}

	return cfg
}

// Save persists cfg to path as YAML, used by the operator CLI's
// `config edit` and `config reset` subcommands.
func Save(path string, cfg matchconf.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnvOverrides loads a .env file (if present) and overrides individual
// knobs from the environment, applied after the YAML file so operators can
// override one setting without editing it.
func ApplyEnvOverrides(cfg *matchconf.Config) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	overrideInt(&cfg.TickIntervalMS, "MATCHFORGE_TICK_INTERVAL_MS")
	overrideInt(&cfg.MaxPingMS, "MATCHFORGE_MAX_PING_MS")
	overrideInt(&cfg.PingRelaxPerSecond, "MATCHFORGE_PING_RELAX_PER_SECOND")
	overrideInt(&cfg.MaxPingMSCap, "MATCHFORGE_MAX_PING_MS_CAP")
	overrideInt(&cfg.MinWaitBeforeMatch, "MATCHFORGE_MIN_WAIT_BEFORE_MATCH_MS")
	overrideInt(&cfg.BaseMMRWindow, "MATCHFORGE_BASE_MMR_WINDOW")
	overrideInt(&cfg.MMRRelaxPerSecond, "MATCHFORGE_MMR_RELAX_PER_SECOND")
	overrideInt(&cfg.MaxMMRWindow, "MATCHFORGE_MAX_MMR_WINDOW")
	overrideInt(&cfg.MaxAllowedMMRDiff, "MATCHFORGE_MAX_ALLOWED_MMR_DIFF")
	overrideInt(&cfg.MMRDiffRelaxPerSecond, "MATCHFORGE_MMR_DIFF_RELAX_PER_SECOND")
	overrideInt(&cfg.MaxRelaxedMMRDiff, "MATCHFORGE_MAX_RELAXED_MMR_DIFF")
	overrideInt(&cfg.GoodRegionPingMS, "MATCHFORGE_GOOD_REGION_PING_MS")
	overrideInt(&cfg.CrossRegionStepMS, "MATCHFORGE_CROSS_REGION_STEP_MS")

	if v := os.Getenv("MATCHFORGE_JOURNAL_PATH"); v != "" {
		cfg.JournalPath = v
	}
	if v := os.Getenv("MATCHFORGE_JOURNAL_KAFKA_TOPIC"); v != "" {
		cfg.JournalKafkaTopic = v
	}
}

func overrideInt(field *int, envKey string) {
	v := os.Getenv(envKey)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring malformed env override", "key", envKey, "value", v)
		return
	}
	*field = n
}
