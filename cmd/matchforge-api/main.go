package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quintet-io/matchforge/cmd/matchforge-api/routing"
	"github.com/quintet-io/matchforge/pkg/app/jobs"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/out"
	"github.com/quintet-io/matchforge/pkg/infra/ioc"
	"github.com/quintet-io/matchforge/pkg/infra/observability"
)

// kafkaPinger is implemented by journal sinks that have a Kafka dependency
// to check; the health service's Kafka checker is wired only if the
// resolved journal satisfies it.
type kafkaPinger interface {
	Ping(ctx context.Context) error
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	builder := ioc.NewContainerBuilder()
	c := builder.WithEnvFile().WithJournal().WithMatchmakingEngine().Build()

	var scheduler *jobs.TickScheduler
	if err := c.Resolve(&scheduler); err != nil {
		slog.ErrorContext(ctx, "failed to resolve tick scheduler", "error", err)
		panic(err)
	}
	go scheduler.Run(ctx)

	var commands in.QueueCommandHandler
	if err := c.Resolve(&commands); err != nil {
		slog.ErrorContext(ctx, "failed to resolve queue command handler", "error", err)
		panic(err)
	}

	var queries in.QueueQueryHandler
	if err := c.Resolve(&queries); err != nil {
		slog.ErrorContext(ctx, "failed to resolve queue query handler", "error", err)
		panic(err)
	}

	var journal out.MatchJournal
	if err := c.Resolve(&journal); err != nil {
		slog.ErrorContext(ctx, "failed to resolve match journal", "error", err)
		panic(err)
	}

	health := observability.NewHealthService("matchforge-api")
	health.RegisterQueueChecker(func(ctx context.Context) (int, error) {
		snapshot := queries.Snapshot(ctx)
		return len(snapshot), nil
	})
	if pinger, ok := journal.(kafkaPinger); ok {
		health.RegisterKafkaChecker(func(ctx context.Context) (bool, error) {
			if err := pinger.Ping(ctx); err != nil {
				return false, err
			}
			return true, nil
		})
	}
	health.StartBackgroundChecks(ctx, 10*time.Second)

	appMetrics := observability.NewApplicationMetrics()
	router := routing.NewRouter(commands, queries, health, appMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.InfoContext(ctx, "starting matchforge-api", "port", port)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-shutdownChan
		slog.InfoContext(ctx, "received shutdown signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "server shutdown error", "error", err)
		}

		cancel()
		slog.InfoContext(ctx, "shutdown complete")
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.ErrorContext(ctx, "server error", "error", err)
		os.Exit(1)
	}
}
