package repository

import (
	"context"
	"fmt"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	pkgkafka "TechAnalyst/pkg/kafka"
)

// KafkaReportPublisher publishes report events keyed by symbol, so the
// reports of one instrument stay ordered within a partition. The producer is
// shared with the log collector and closed by its owner.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.ReportPublisher = (*KafkaReportPublisher)(nil)

func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, ev *models.ReportEvent) error {
	if ev == nil {
		return fmt.Errorf("nil report event")
	}
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaReportPublisher) Close() error { return nil }

// NoopReportPublisher drops events. It is used when no brokers are configured.
type NoopReportPublisher struct{}

var _ domrepo.ReportPublisher = NoopReportPublisher{}

func (NoopReportPublisher) Publish(context.Context, *models.ReportEvent) error { return nil }
func (NoopReportPublisher) Close() error                                       { return nil }
