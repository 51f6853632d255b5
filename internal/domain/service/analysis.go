package service

import (
	"TechAnalyst/internal/domain/models"
)

// StrategyEvaluator turns a price series into one strategy signal.
// Implementations must not mutate the series.
type StrategyEvaluator interface {
	Name() string
	// Metrics lists the metric keys every signal of this evaluator carries.
	Metrics() []string
	Evaluate(series models.PriceSeries) models.StrategySignal
}

// Analyzer produces a full report for one series. It is synchronous and
// safe for concurrent use.
type Analyzer interface {
	Analyze(series models.PriceSeries) (*models.AnalysisReport, error)
	Catalog() models.StrategyCatalog
}
