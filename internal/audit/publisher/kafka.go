// Package publisher streams audit records to Kafka for downstream case
// management and SIEM consumers.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"watchlist/internal/screening"
)

// KafkaPublisher publishes one JSON message per audit record, keyed by the
// query name so all evidence for one screening lands on one partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// payload is the wire shape of an audit record. Field names are part of the
// consumer contract; do not rename.
type payload struct {
	Timestamp   string  `json:"timestamp"`
	QueryName   string  `json:"query_name"`
	EntityID    string  `json:"entity_id"`
	ListID      string  `json:"list_id"`
	Stage       string  `json:"stage"`
	MatchedName string  `json:"matched_name"`
	Score       float64 `json:"score"`
	Confidence  string  `json:"confidence"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
}

// NewKafkaPublisher connects to the brokers and ensures the audit topic
// exists. Topic creation losing a race to another instance is not an error.
func NewKafkaPublisher(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(5*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopic(ctx, 6, 1, nil, topic); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure audit topic %s: %w", topic, err)
	}

	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, rec screening.MatchAuditRecord) error {
	value, err := json.Marshal(payload{
		Timestamp:   rec.Timestamp.Format(time.RFC3339Nano),
		QueryName:   rec.QueryName,
		EntityID:    rec.EntityID.String(),
		ListID:      rec.ListID.String(),
		Stage:       string(rec.Stage),
		MatchedName: rec.MatchedName,
		Score:       rec.Score,
		Confidence:  string(rec.Confidence),
		Reason:      rec.Reason,
		Status:      string(rec.Status),
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(rec.QueryName),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit record: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
