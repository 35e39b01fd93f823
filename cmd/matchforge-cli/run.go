package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quintet-io/matchforge/pkg/app/jobs"
	"github.com/quintet-io/matchforge/pkg/infra/ioc"
)

// runCmd starts the tick scheduler in the foreground, the translation of
// the original prototype's interactive "run matchmaking" menu option into
// a non-interactive subcommand: no stdin prompt loop, just run until
// interrupted.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the matchmaking engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			slog.SetDefault(logger)

			builder := ioc.NewContainerBuilder()
			c := builder.WithEnvFile().WithJournal().WithMatchmakingEngine().Build()

			var scheduler *jobs.TickScheduler
			if err := c.Resolve(&scheduler); err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				slog.InfoContext(ctx, "shutdown requested")
				cancel()
			}()

			scheduler.Run(ctx)
			return nil
		},
	}
}
