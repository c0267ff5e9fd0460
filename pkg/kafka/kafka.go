package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"borrowings"`
}

type EventType string

const (
	EventBorrowed EventType = "BORROWED"
	EventReturned EventType = "RETURNED"
	EventFinePaid EventType = "FINE_PAID"
)

type Event struct {
	Type        EventType `json:"eventType"`
	BorrowingID int       `json:"borrowingId"`
	BookID      int       `json:"bookId"`
	MemberID    int       `json:"memberId"`
	Timestamp   time.Time `json:"timestamp"`
}

// Emitter publishes borrowing lifecycle events.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type producerEmitter struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEmitter(producer sarama.SyncProducer, topic string) Emitter {
	return &producerEmitter{producer: producer, topic: topic}
}

func (e *producerEmitter) Emit(_ context.Context, event Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, _, err = e.producer.SendMessage(&sarama.ProducerMessage{
		Topic: e.topic,
		Value: sarama.ByteEncoder(b),
	})
	return err
}

// NopEmitter is used when no brokers are configured.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, Event) error { return nil }
