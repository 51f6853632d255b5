package repository

import (
	"context"

	"TechAnalyst/internal/domain/models"
)

// ReportPublisher ships computed reports to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, ev *models.ReportEvent) error
	Close() error
}

type Metrics interface {
	RecordAnalysis(symbol string, signal models.SignalLabel)
	RecordStrategySignal(strategy string, signal models.SignalLabel)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}

// ReportCache memoises analysis results by input key.
type ReportCache interface {
	Get(ctx context.Context, key string) (*models.AnalysisResult, bool, error)
	Set(ctx context.Context, key string, res *models.AnalysisResult) error
}
