// Package strategies implements the five ensemble evaluators. Each one is
// stateless and reads only the series it is given.
package strategies

import (
	"math"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/domain/service"
)

const neutralConfidence = 0.5

// Weighted pairs an evaluator with its ensemble weight.
type Weighted struct {
	Evaluator service.StrategyEvaluator
	Weight    float64
}

// Ensemble builds the evaluators in report order.
func Ensemble(cfg Config) []Weighted {
	return []Weighted{
		{Evaluator: NewTrendFollowing(cfg.Trend), Weight: cfg.Weights.TrendFollowing},
		{Evaluator: NewMeanReversion(cfg.MeanReversion), Weight: cfg.Weights.MeanReversion},
		{Evaluator: NewMomentum(cfg.Momentum), Weight: cfg.Weights.Momentum},
		{Evaluator: NewVolatility(cfg.Volatility), Weight: cfg.Weights.Volatility},
		{Evaluator: NewStatisticalArbitrage(cfg.StatArb), Weight: cfg.Weights.StatisticalArbitrage},
	}
}

func neutral(metrics map[string]float64) models.StrategySignal {
	return models.StrategySignal{Signal: models.Neutral, Confidence: neutralConfidence, Metrics: metrics}
}

func signal(label models.SignalLabel, confidence float64, metrics map[string]float64) models.StrategySignal {
	return models.StrategySignal{Signal: label, Confidence: clamp01(confidence), Metrics: metrics}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
