package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/logger"
	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/segmentio/kafka-go"
)

// EventRegistered is the message written for every registration.
type EventRegistered struct {
	Type         string             `json:"type"`
	Registration model.Registration `json:"registration"`
	PublishedAt  time.Time          `json:"published_at"`
}

const eventRegisteredType = "event.registered"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher streams registrations to a Kafka topic, keyed by event id
// so that all registrations of one event land on one partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *logger.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer, topic: topic, logger: log}
}

// PublishRegistration streams the registration event to Kafka.
func (p *KafkaPublisher) PublishRegistration(ctx context.Context, reg model.Registration) error {
	msgBytes, err := json.Marshal(EventRegistered{
		Type:         eventRegisteredType,
		Registration: reg,
		PublishedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(reg.EventID)),
		Value: msgBytes,
	}); err != nil {
		return fmt.Errorf("publish registration %s: %w", reg.ID, err)
	}

	p.logger.LogKafka("PUBLISH", p.topic, fmt.Sprintf("registration %s for event %d", reg.ID, reg.EventID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
