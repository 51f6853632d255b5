// Package analytics runs the two signal pipelines over a price series: the
// basic-indicator vote and the weighted strategy ensemble.
package analytics

import (
	"fmt"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/domain/service"
	"TechAnalyst/internal/services/strategies"
)

// Engine is stateless after construction and safe for concurrent use.
type Engine struct {
	cfg      Config
	voter    voter
	ensemble []strategies.Weighted
}

var _ service.Analyzer = (*Engine)(nil)

type Option func(*Engine)

// WithConfig replaces the default windows and weights.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// NewEngine builds an engine. The resulting configuration must validate.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analytics: invalid config: %w", err)
	}
	e.voter = voter{cfg: e.cfg.Voter}
	e.ensemble = strategies.Ensemble(e.cfg.Strategies)
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Analyze validates the series and runs both pipelines on a private copy.
func (e *Engine) Analyze(series models.PriceSeries) (*models.AnalysisReport, error) {
	if err := ValidateSeries(series); err != nil {
		return nil, err
	}
	snapshot := series.Clone()

	signals := make([]models.NamedSignal, 0, len(e.ensemble))
	for _, w := range e.ensemble {
		signals = append(signals, models.NamedSignal{
			Name:           w.Evaluator.Name(),
			Weight:         w.Weight,
			StrategySignal: w.Evaluator.Evaluate(snapshot),
		})
	}

	return &models.AnalysisReport{
		BasicVote: e.voter.vote(snapshot),
		Ensemble: models.EnsembleResult{
			Composite:  Combine(signals),
			Strategies: signals,
		},
	}, nil
}

// Catalog describes the ensemble members and the basic vote indicators.
func (e *Engine) Catalog() models.StrategyCatalog {
	infos := make([]models.StrategyInfo, 0, len(e.ensemble))
	for _, w := range e.ensemble {
		infos = append(infos, models.StrategyInfo{
			Name:    w.Evaluator.Name(),
			Weight:  w.Weight,
			Metrics: w.Evaluator.Metrics(),
		})
	}
	indicators := make([]string, len(basicIndicators))
	copy(indicators, basicIndicators)
	return models.StrategyCatalog{Strategies: infos, BasicIndicators: indicators}
}
