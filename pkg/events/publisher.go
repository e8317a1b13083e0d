// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const PaymentStatusChanged = "payment.status_changed"

// PaymentEvent is emitted after a payment reaches a terminal status.
type PaymentEvent struct {
	Type          string    `json:"type"`
	PaymentID     int64     `json:"payment_id"`
	BookingID     int64     `json:"booking_id"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
	log    *zap.Logger
}

// NewKafkaPublisher writes to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	return NewKafkaPublisherWithWriter(w, log)
}

func NewKafkaPublisherWithWriter(w Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		log:    log.With(zap.String("component", "publisher")),
	}
}

// Publish marshals value to JSON. Messages with the same key land on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{Key: []byte(key), Value: b}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Kafka write failed", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("write event %s: %w", key, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
