// Package kafka publishes cache-invalidation events consumed by the
// read-side view builders (dashboards, reports).
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// WalletViewEvent tells downstream consumers that a user's wallet-derived
// views can no longer be served from cache.
type WalletViewEvent struct {
	UserID     int64     `json:"userId"`
	WalletID   string    `json:"walletId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher implements wallet.ViewInvalidator on top of a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// WalletViewsStale publishes an invalidation event. Keyed by user so all
// events for one user land in the same partition, preserving their order.
// Delivery is best effort; failures are logged, never surfaced to the caller.
func (p *Publisher) WalletViewsStale(ctx context.Context, userID int64, walletID string) {
	data, err := json.Marshal(WalletViewEvent{
		UserID:     userID,
		WalletID:   walletID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("kafka: failed to encode wallet view event: %v", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: data,
	})
	if err != nil {
		log.Printf("kafka: failed to publish wallet view event for user %d: %v", userID, err)
	}
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
