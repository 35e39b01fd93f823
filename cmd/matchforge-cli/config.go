package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	matchconf "github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
	configinfra "github.com/quintet-io/matchforge/pkg/infra/config"
)

func configPathFlag(cmd *cobra.Command) *string {
	path := "config/matchmaking.yaml"
	cmd.Flags().StringVar(&path, "path", path, "path to the tuning config file")
	return &path
}

// configCmd groups the read/write subcommands replacing the original
// prototype's interactive "change options" / "reset to defaults" menu.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the matchmaking tuning config",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configResetCmd())
	cmd.AddCommand(configEditCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current tuning config",
	}
	path := configPathFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := configinfra.Load(*path)
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, string(out))
		return nil
	}
	return cmd
}

func configResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the tuning config to built-in defaults",
	}
	path := configPathFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := configinfra.Save(*path, matchconf.Default()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "options reset to defaults")
		return nil
	}
	return cmd
}

// configEditCmd applies per-knob flag overrides (e.g. --tick-interval-ms)
// to the config file, the non-interactive equivalent of the original
// prototype's numbered settings menu.
func configEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change individual tuning settings",
	}
	path := configPathFlag(cmd)

	var tickIntervalMS, maxPingMS, pingRelaxPerSecond, maxPingMSCap, minWaitBeforeMatch int
	var baseMMRWindow, mmrRelaxPerSecond, maxMMRWindow int
	var maxAllowedMMRDiff, mmrDiffRelaxPerSecond, maxRelaxedMMRDiff int
	var goodRegionPingMS, crossRegionStepMS int
	var matchesPath string

	f := cmd.Flags()
	f.IntVar(&tickIntervalMS, "tick-interval-ms", -1, "")
	f.IntVar(&maxPingMS, "max-ping-ms", -1, "")
	f.IntVar(&pingRelaxPerSecond, "ping-relax-per-second", -1, "")
	f.IntVar(&maxPingMSCap, "max-ping-ms-cap", -1, "")
	f.IntVar(&minWaitBeforeMatch, "min-wait-before-match-ms", -1, "")
	f.IntVar(&baseMMRWindow, "base-mmr-window", -1, "")
	f.IntVar(&mmrRelaxPerSecond, "mmr-relax-per-second", -1, "")
	f.IntVar(&maxMMRWindow, "max-mmr-window", -1, "")
	f.IntVar(&maxAllowedMMRDiff, "max-allowed-mmr-diff", -1, "")
	f.IntVar(&mmrDiffRelaxPerSecond, "mmr-diff-relax-per-second", -1, "")
	f.IntVar(&maxRelaxedMMRDiff, "max-relaxed-mmr-diff", -1, "")
	f.IntVar(&goodRegionPingMS, "good-region-ping-ms", -1, "")
	f.IntVar(&crossRegionStepMS, "cross-region-step-ms", -1, "")
	f.StringVar(&matchesPath, "matches-path", "", "")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := configinfra.Load(*path)

		setIfChanged(&cfg.TickIntervalMS, tickIntervalMS)
		setIfChanged(&cfg.MaxPingMS, maxPingMS)
		setIfChanged(&cfg.PingRelaxPerSecond, pingRelaxPerSecond)
		setIfChanged(&cfg.MaxPingMSCap, maxPingMSCap)
		setIfChanged(&cfg.MinWaitBeforeMatch, minWaitBeforeMatch)
		setIfChanged(&cfg.BaseMMRWindow, baseMMRWindow)
		setIfChanged(&cfg.MMRRelaxPerSecond, mmrRelaxPerSecond)
		setIfChanged(&cfg.MaxMMRWindow, maxMMRWindow)
		setIfChanged(&cfg.MaxAllowedMMRDiff, maxAllowedMMRDiff)
		setIfChanged(&cfg.MMRDiffRelaxPerSecond, mmrDiffRelaxPerSecond)
		setIfChanged(&cfg.MaxRelaxedMMRDiff, maxRelaxedMMRDiff)
		setIfChanged(&cfg.GoodRegionPingMS, goodRegionPingMS)
		setIfChanged(&cfg.CrossRegionStepMS, crossRegionStepMS)
		if matchesPath != "" {
			cfg.JournalPath = matchesPath
		}

		if err := configinfra.Save(*path, cfg); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "options updated")
		return nil
	}

	return cmd
}

func setIfChanged(field *int, value int) {
	if value >= 0 {
		*field = value
	}
}
