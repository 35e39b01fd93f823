package ioc

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	container "github.com/golobby/container/v3"

	matchconf "github.com/quintet-io/matchforge/pkg/domain/matchmaking/config"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/in"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/ports/out"
	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/services"

	"github.com/quintet-io/matchforge/pkg/app/jobs"
	"github.com/quintet-io/matchforge/pkg/app/usecase"

	matchmaking_config "github.com/quintet-io/matchforge/pkg/infra/config"
	"github.com/quintet-io/matchforge/pkg/infra/idgen"
	"github.com/quintet-io/matchforge/pkg/infra/journal"
	"github.com/quintet-io/matchforge/pkg/infra/metrics"
)

type ContainerBuilder struct {
	Container container.Container
}

func NewContainerBuilder() *ContainerBuilder {
	c := container.New()

	b := &ContainerBuilder{c}

	if err := c.Singleton(func() container.Container { return b.Container }); err != nil {
		slog.Error("Failed to register *container.Container in NewContainerBuilder.")
		panic(err)
	}

	if err := c.Singleton(func() *ContainerBuilder { return b }); err != nil {
		slog.Error("Failed to register *ContainerBuilder in NewContainerBuilder.")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) Build() container.Container {
	return b.Container
}

// WithEnvFile loads .env in dev and registers the tuning config, read from
// MATCHFORGE_CONFIG_PATH (default config/matchmaking.yaml) with
// MATCHFORGE_* environment overrides layered on top.
func (b *ContainerBuilder) WithEnvFile() *ContainerBuilder {
	if os.Getenv("DEV_ENV") == "true" {
		if err := godotenv.Load(); err != nil {
			slog.Warn("no .env file loaded", "error", err)
		}
	}

	path := os.Getenv("MATCHFORGE_CONFIG_PATH")
	if path == "" {
		path = "config/matchmaking.yaml"
	}

	cfg := matchmaking_config.Load(path)
	matchmaking_config.ApplyEnvOverrides(&cfg)

	if err := b.Container.Singleton(func() matchconf.Config { return cfg }); err != nil {
		slog.Error("Failed to register matchconf.Config.")
		panic(err)
	}

	return b
}

// WithJournal registers the dual-sink match journal: Kafka primary, local
// file fallback, wrapped so a failure of either never aborts a tick.
func (b *ContainerBuilder) WithJournal() *ContainerBuilder {
	c := b.Container

	err := c.Singleton(func() (out.MatchJournal, error) {
		var cfg matchconf.Config
		if err := c.Resolve(&cfg); err != nil {
			slog.Error("Failed to resolve matchconf.Config for journal.", "err", err)
			return nil, err
		}

		bootstrap := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
		if bootstrap == "" {
			bootstrap = "localhost:9092"
		}

		primary := journal.NewKafkaJournal(journal.KafkaConfig{
			BootstrapServers: bootstrap,
			Topic:            cfg.JournalKafkaTopic,
		})

		secondary, err := journal.NewFileJournal(cfg.JournalPath)
		if err != nil {
			slog.Error("Failed to open file journal fallback, running with kafka only.", "err", err, "path", cfg.JournalPath)
			return primary, nil
		}

		return journal.NewFallbackJournal(primary, secondary), nil
	})

	if err != nil {
		slog.Error("Failed to register out.MatchJournal.")
		panic(err)
	}

	return b
}

// WithMatchmakingEngine registers the queue store, delivery buffer, match
// builder, tick scheduler, and the engine facade that implements both
// inbound ports, wiring the Prometheus sink into the scheduler.
func (b *ContainerBuilder) WithMatchmakingEngine() *ContainerBuilder {
	c := b.Container

	if err := c.Singleton(func() *services.QueueStore { return services.NewQueueStore() }); err != nil {
		slog.Error("Failed to register *services.QueueStore.")
		panic(err)
	}

	if err := c.Singleton(func() *services.DeliveryBuffer { return services.NewDeliveryBuffer() }); err != nil {
		slog.Error("Failed to register *services.DeliveryBuffer.")
		panic(err)
	}

	if err := c.Singleton(func() *services.MatchBuilder { return services.NewMatchBuilder() }); err != nil {
		slog.Error("Failed to register *services.MatchBuilder.")
		panic(err)
	}

	if err := c.Singleton(func() *idgen.MatchIDGenerator { return idgen.NewMatchIDGenerator() }); err != nil {
		slog.Error("Failed to register *idgen.MatchIDGenerator.")
		panic(err)
	}

	err := c.Singleton(func() (*jobs.TickScheduler, error) {
		var queue *services.QueueStore
		if err := c.Resolve(&queue); err != nil {
			return nil, err
		}

		var buffer *services.DeliveryBuffer
		if err := c.Resolve(&buffer); err != nil {
			return nil, err
		}

		var builder *services.MatchBuilder
		if err := c.Resolve(&builder); err != nil {
			return nil, err
		}

		var matchJournal out.MatchJournal
		if err := c.Resolve(&matchJournal); err != nil {
			return nil, err
		}

		var idGen *idgen.MatchIDGenerator
		if err := c.Resolve(&idGen); err != nil {
			return nil, err
		}

		var cfg matchconf.Config
		if err := c.Resolve(&cfg); err != nil {
			return nil, err
		}

		sink := metrics.NewSink()

		return jobs.NewTickScheduler(queue, buffer, builder, matchJournal, idGen.New, cfg, sink), nil
	})

	if err != nil {
		slog.Error("Failed to register *jobs.TickScheduler.")
		panic(err)
	}

	err = c.Singleton(func() (*usecase.MatchmakingEngine, error) {
		var queue *services.QueueStore
		if err := c.Resolve(&queue); err != nil {
			return nil, err
		}

		var buffer *services.DeliveryBuffer
		if err := c.Resolve(&buffer); err != nil {
			return nil, err
		}

		var scheduler *jobs.TickScheduler
		if err := c.Resolve(&scheduler); err != nil {
			return nil, err
		}

		return usecase.NewMatchmakingEngine(queue, buffer, scheduler), nil
	})

	if err != nil {
		slog.Error("Failed to register *usecase.MatchmakingEngine.")
		panic(err)
	}

	if err := c.Singleton(func() (in.QueueCommandHandler, error) {
		var engine *usecase.MatchmakingEngine
		err := c.Resolve(&engine)
		return engine, err
	}); err != nil {
		slog.Error("Failed to register in.QueueCommandHandler.")
		panic(err)
	}

	if err := c.Singleton(func() (in.QueueQueryHandler, error) {
		var engine *usecase.MatchmakingEngine
		err := c.Resolve(&engine)
		return engine, err
	}); err != nil {
		slog.Error("Failed to register in.QueueQueryHandler.")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) With(resolver interface{}) *ContainerBuilder {
	if err := b.Container.Singleton(resolver); err != nil {
		slog.Error("Failed to register resolver.", "err", err)
		panic(err)
	}
	return b
}
