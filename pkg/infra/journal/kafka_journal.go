// Package journal implements the durable, advisory match record described
// in the external-interfaces journal format: one JSON object per match,
// fields match_id and players ({id, mmr, ping, region}).
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// KafkaConfig configures the primary durable sink, grounded on this
// codebase's kafka.Config/Client shape trimmed of the SASL/TLS machinery
// this engine has no use for (no multi-tenant auth in scope).
type KafkaConfig struct {
	BootstrapServers string
	Topic            string
}

// KafkaJournal publishes one message per match to a single topic.
type KafkaJournal struct {
	writer      *kafka.Writer
	firstBroker string
}

func NewKafkaJournal(cfg KafkaConfig) *KafkaJournal {
	brokers := strings.Split(cfg.BootstrapServers, ",")
	return &KafkaJournal{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		firstBroker: strings.TrimSpace(brokers[0]),
	}
}

// journalRecord is the wire shape for one journal line, matching the
// match_id/players/{id,mmr,ping,region} format.
type journalRecord struct {
	MatchID string           `json:"match_id"`
	Players []journalPlayer  `json:"players"`
}

type journalPlayer struct {
	ID     string          `json:"id"`
	MMR    int             `json:"mmr"`
	Ping   int             `json:"ping"`
	Region entities.Region `json:"region"`
}

func toRecord(m entities.Match) journalRecord {
	players := make([]journalPlayer, len(m.Players))
	for i, p := range m.Players {
		players[i] = journalPlayer{
			ID:     p.ID,
			MMR:    p.MMR,
			Ping:   p.EffectivePing(m.Region),
			Region: p.Region,
		}
	}
	return journalRecord{MatchID: m.ID, Players: players}
}

func (j *KafkaJournal) Append(ctx context.Context, match entities.Match) error {
	record := toRecord(match)
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal journal record: %w", err)
	}

	return j.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(match.ID),
		Value: value,
		Time:  time.Now(),
	})
}

func (j *KafkaJournal) Close() error {
	return j.writer.Close()
}

// Ping dials the first configured broker to confirm it's reachable,
// without publishing anything. Used by the health service's Kafka checker.
func (j *KafkaJournal) Ping(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", j.firstBroker)
	if err != nil {
		return fmt.Errorf("dial kafka broker %s: %w", j.firstBroker, err)
	}
	defer conn.Close()
	return nil
}
