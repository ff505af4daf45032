package events

import (
	"time"

	"github.com/IBM/sarama"

	"kriya/internal/cart"
	applog "kriya/internal/log"
)

// NewSyncProducer builds a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	return sarama.NewSyncProducer(brokers, cfg)
}

// KafkaPublisher writes one message per cart event, keyed by session so a
// session's events stay on one partition in order.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish is a cart listener.
func (p *KafkaPublisher) Publish(e cart.Event) {
	session, payload, err := encode(e, time.Now())
	if err != nil {
		applog.Error(nil, "events.kafka_encode_failed", err, map[string]any{"session": session})
		return
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(session),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		applog.Error(nil, "events.kafka_publish_failed", err, map[string]any{"session": session, "topic": p.topic})
		return
	}
	applog.Info(nil, "events.kafka_published", map[string]any{"session": session, "partition": partition, "offset": offset})
}

func (p *KafkaPublisher) Close() error { return p.producer.Close() }
