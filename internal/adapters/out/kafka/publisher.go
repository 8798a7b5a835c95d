// Package kafka mirrors order notifications onto a Kafka topic for
// consumers outside this service.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"ricetrade/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ParseBrokers splits a comma separated broker list, skipping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type record struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
	SentAt  time.Time       `json:"sentAt"`
}

// Publisher implements ports.Publisher. Messages are keyed by channel so one
// recipient's events stay ordered within a partition. Writes are
// asynchronous; delivery failures are logged from the completion callback.
type Publisher struct {
	writer *kafka.Writer
	now    func() time.Time
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	logger = logger.With("component", "kafka_publisher", "topic", topic)
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			Async:                  true,
			AllowAutoTopicCreation: true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Error("Failed to write notifications", "count", len(messages), "error", err)
				}
			},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) Publish(ctx context.Context, msg ports.Message) error {
	m, err := p.message(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, m)
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) message(msg ports.Message) (kafka.Message, error) {
	data := json.RawMessage(msg.Data)
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	now := p.now()
	value, err := json.Marshal(record{
		Channel: msg.Channel.String(),
		Event:   msg.Event,
		Data:    data,
		SentAt:  now,
	})
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:     []byte(msg.Channel.String()),
		Value:   value,
		Headers: []kafka.Header{{Key: "event", Value: []byte(msg.Event)}},
		Time:    now,
	}, nil
}
