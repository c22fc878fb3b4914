// Package events publishes domain events for downstream consumers. Publishing
// is best effort: a lost event never fails the request that produced it.
package events

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher emits one event payload under a partition key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte)
	Close()
}

// Noop discards events. Used when Kafka is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, []byte) {}
func (Noop) Close()                                  {}

// Kafka publishes events to a single topic via franz-go.
type Kafka struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewKafka connects to the brokers and returns a topic-bound publisher.
func NewKafka(brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &Kafka{client: client, logger: logger}, nil
}

// Publish produces asynchronously; delivery failures are logged, not returned,
// so the submission path never blocks on the broker.
func (k *Kafka) Publish(ctx context.Context, key string, payload []byte) {
	record := &kgo.Record{Key: []byte(key), Value: payload}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.logger.Warn("event publish failed", "key", key, "error", err)
		}
	})
}

// Close flushes pending records and releases the client.
func (k *Kafka) Close() {
	k.client.Close()
}
