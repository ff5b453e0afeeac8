//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"watchlist/internal/audit/publisher"
	"watchlist/internal/screening"
	"watchlist/pkg/testutil/containers"
)

func TestKafkaPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t)
	ctx := context.Background()
	const topic = "watchlist.audit.matches.test"

	pub, err := publisher.NewKafkaPublisher(ctx, broker.Brokers, topic, nil)
	require.NoError(t, err)
	defer pub.Close()

	rec := screening.MatchAuditRecord{
		Timestamp:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		QueryName:   "John Smith",
		EntityID:    "e1",
		ListID:      "ofac-sdn",
		Stage:       screening.StageExact,
		MatchedName: "John Smith",
		Score:       1.0,
		Confidence:  screening.ConfidenceHigh,
		Reason:      `normalized name exactly matches "John Smith"`,
		Status:      screening.StatusSanctioned,
	}
	require.NoError(t, pub.Publish(ctx, rec))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []byte("John Smith"), records[0].Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, "John Smith", got["query_name"])
	assert.Equal(t, "e1", got["entity_id"])
	assert.Equal(t, "ofac-sdn", got["list_id"])
	assert.Equal(t, "exact", got["stage"])
	assert.Equal(t, 1.0, got["score"])
	assert.Equal(t, "high", got["confidence"])
	assert.Equal(t, "SANCTIONED", got["status"])
}

func TestKafkaPublisherTopicAlreadyExists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t)
	ctx := context.Background()
	const topic = "watchlist.audit.matches.existing"

	first, err := publisher.NewKafkaPublisher(ctx, broker.Brokers, topic, nil)
	require.NoError(t, err)
	first.Close()

	second, err := publisher.NewKafkaPublisher(ctx, broker.Brokers, topic, nil)
	require.NoError(t, err, "an existing topic must not fail construction")
	second.Close()
}
