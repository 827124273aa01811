package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTransport publishes each event as one JSON message keyed by event name.
type KafkaTransport struct {
	writer messageWriter
}

var _ Transport = (*KafkaTransport)(nil)

// NewKafkaTransport creates a transport writing to topic on the given brokers.
func NewKafkaTransport(brokers []string, topic string) *KafkaTransport {
	return &KafkaTransport{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 5 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Compression:  kafka.Snappy,
		},
	}
}

func (k *KafkaTransport) Send(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Name),
		Value: value,
		Headers: []kafka.Header{{
			Key:   "issuedAt",
			Value: []byte(strconv.FormatInt(event.IssuedAt, 10)),
		}},
	})
}

// Close flushes and closes the underlying writer.
func (k *KafkaTransport) Close() error {
	return k.writer.Close()
}
