package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/domain"
	portsevt "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTransactionPublisher writes processed transactions to a Kafka topic,
// keyed by account so that one account's events stay ordered.
type KafkaTransactionPublisher struct {
	writer messageWriter
}

var _ portsevt.TransactionPublisher = (*KafkaTransactionPublisher)(nil)

func NewKafkaTransactionPublisher(brokers []string, topic string) *KafkaTransactionPublisher {
	return &KafkaTransactionPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (k *KafkaTransactionPublisher) PublishTransaction(ctx context.Context, event domain.TransactionEvent) error {
	v, err := json.Marshal(newTransactionEvent(event))
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event %s: %w", event.ReferenceID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AccountID.String()),
		Value: v,
		Time:  event.AppliedAt,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write transaction event %s: %w", event.ReferenceID, err)
	}
	return nil
}

func (k *KafkaTransactionPublisher) Close() error {
	return k.writer.Close()
}
