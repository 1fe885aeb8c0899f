package repository

import (
	"context"
	"fmt"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/domain/repository"
)

// producer is the subset of pkg/kafka.Producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value any) error
	Close() error
}

// KafkaPublisher emits chart summaries and request results.
type KafkaPublisher struct {
	producer     producer
	eventsTopic  string
	resultsTopic string
}

// NewKafkaPublisher creates a Kafka-backed chart publisher.
func NewKafkaPublisher(p producer, eventsTopic, resultsTopic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, eventsTopic: eventsTopic, resultsTopic: resultsTopic}
}

func (p *KafkaPublisher) PublishComputed(ctx context.Context, ev *models.ChartComputed) error {
	if err := p.producer.Publish(ctx, p.eventsTopic, eventKey(ev), ev); err != nil {
		return fmt.Errorf("publish computed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) PublishResult(ctx context.Context, res *models.ChartResultMessage) error {
	if err := p.producer.Publish(ctx, p.resultsTopic, []byte(res.RequestID), res); err != nil {
		return fmt.Errorf("publish result %s: %w", res.RequestID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// eventKey keys summaries by request id, or by birth data for direct requests.
func eventKey(ev *models.ChartComputed) []byte {
	if ev.RequestID != "" {
		return []byte(ev.RequestID)
	}
	return []byte(ev.Birth.Date + "T" + ev.Birth.Time)
}

var _ repository.ChartPublisher = (*KafkaPublisher)(nil)
