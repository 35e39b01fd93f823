// Command matchforge-simulate generates synthetic traffic against a running
// matchforge-api instance, the Go REST-client translation of the original
// prototype's gRPC SimulatorClient.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var regions = []string{"NA", "EU", "ASIA"}

type player struct {
	PlayerID string `json:"player_id"`
	MMR      int    `json:"mmr"`
	PingNA   int    `json:"ping_na"`
	PingEU   int    `json:"ping_eu"`
	PingASIA int    `json:"ping_asia"`
}

func makeDummyPlayer(index int) (string, player) {
	region := regions[rand.Intn(len(regions))]
	return region, player{
		PlayerID: fmt.Sprintf("sim_player_%d", index),
		MMR:      800 + rand.Intn(1600),
		PingNA:   20 + rand.Intn(130),
		PingEU:   20 + rand.Intn(130),
		PingASIA: 20 + rand.Intn(130),
	}
}

func main() {
	target := flag.String("target", "http://localhost:8080", "matchforge-api base URL")
	totalPlayers := flag.Int("players", 100, "total players to enqueue")
	ratePerSecond := flag.Float64("rate", 20, "players enqueued per second")
	concurrency := flag.Int("concurrency", 8, "concurrent enqueue workers")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	limiter := rate.NewLimiter(rate.Limit(*ratePerSecond), 1)
	client := &http.Client{Timeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)

	slog.InfoContext(ctx, "starting simulation", "target", *target, "total_players", *totalPlayers, "rate", *ratePerSecond)

	for i := 0; i < *totalPlayers; i++ {
		i := i
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		g.Go(func() error {
			region, p := makeDummyPlayer(i)
			if err := enqueue(ctx, client, *target, region, p); err != nil {
				slog.WarnContext(ctx, "enqueue failed", "player_id", p.PlayerID, "error", err)
				return nil
			}
			slog.InfoContext(ctx, "enqueued", "player_id", p.PlayerID, "mmr", p.MMR, "region", region)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "simulation aborted", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "simulation finished")
}

func enqueue(ctx context.Context, client *http.Client, target, region string, p player) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/queue/%s", target, region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
