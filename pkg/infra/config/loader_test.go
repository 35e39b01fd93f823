package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchconf "github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
	configinfra "github.com/quintet-io/matchforge/pkg/infra/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg := configinfra.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, matchconf.Default(), cfg)
}

func TestLoad_ReadsYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchmaking.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_interval_ms: 500\nbase_mmr_window: 50\n"), 0644))

	cfg := configinfra.Load(path)

	assert.Equal(t, 500, cfg.TickIntervalMS)
	assert.Equal(t, 50, cfg.BaseMMRWindow)
	assert.Equal(t, matchconf.Default().MaxMMRWindow, cfg.MaxMMRWindow, "unset keys keep defaults")
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchmaking.yaml")
	cfg := matchconf.Default()
	cfg.TickIntervalMS = 750

	require.NoError(t, configinfra.Save(path, cfg))

	loaded := configinfra.Load(path)
	assert.Equal(t, 750, loaded.TickIntervalMS)
}

func TestApplyEnvOverrides_OverridesSingleKnob(t *testing.T) {
	t.Setenv("MATCHFORGE_TICK_INTERVAL_MS", "250")

	cfg := matchconf.Default()
	configinfra.ApplyEnvOverrides(&cfg)

	assert.Equal(t, 250, cfg.TickIntervalMS)
	assert.Equal(t, matchconf.Default().BaseMMRWindow, cfg.BaseMMRWindow)
}
