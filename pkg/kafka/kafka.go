package kafka

import (
	"context"

	"github.com/Astemirdum/home-library/pkg/jsonx"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const CatalogTopic = "catalog-events"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
	Topic string   `envconfig:"KAFKA_TOPIC" default:"catalog-events"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	if topic == "" {
		topic = CatalogTopic
	}
	return &Publisher{producer: producer, topic: topic}
}

// Publish sends v as json, keyed so one record's events keep their order.
func (p *Publisher) Publish(_ context.Context, key string, v any) error {
	data, err := jsonx.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return errors.Wrapf(err, "send to %s", p.topic)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
