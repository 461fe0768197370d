package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"archie-core-vtex-connector/internal/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaActivityPublisher mirrors activity entries to a Kafka topic, keyed by shop
type KafkaActivityPublisher struct {
	writer *kafka.Writer
}

// NewKafkaActivityPublisher creates a publisher writing to topic on brokers
func NewKafkaActivityPublisher(brokers []string, topic string) *KafkaActivityPublisher {
	return &KafkaActivityPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish writes one entry
func (p *KafkaActivityPublisher) Publish(ctx context.Context, entry *domain.ActivityLogEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode activity: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(entry.Shop),
		Value: body,
		Time:  entry.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish activity: %w", err)
	}
	return nil
}

// Close flushes pending writes
func (p *KafkaActivityPublisher) Close() error {
	return p.writer.Close()
}

// NoopActivityPublisher is used when no brokers are configured
type NoopActivityPublisher struct{}

// Publish does nothing
func (NoopActivityPublisher) Publish(context.Context, *domain.ActivityLogEntry) error { return nil }

// Close does nothing
func (NoopActivityPublisher) Close() error { return nil }
