package strategies

import (
	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/indicators"
)

// TrendFollowing reads the alignment of three EMAs and scales confidence by
// ADX.
type TrendFollowing struct {
	cfg TrendConfig
}

func NewTrendFollowing(cfg TrendConfig) *TrendFollowing {
	return &TrendFollowing{cfg: cfg}
}

func (s *TrendFollowing) Name() string { return NameTrendFollowing }

func (s *TrendFollowing) Metrics() []string { return []string{"adx", "trend_strength"} }

func (s *TrendFollowing) Evaluate(series models.PriceSeries) models.StrategySignal {
	closes := series.Closes()
	fast := indicators.EMA(closes, s.cfg.FastEMA).Last()
	medium := indicators.EMA(closes, s.cfg.MediumEMA).Last()
	slow := indicators.EMA(closes, s.cfg.SlowEMA).Last()

	adx := indicators.Or(indicators.ADX(series.Highs(), series.Lows(), closes, s.cfg.ADXPeriod).ADX.Last(), 0)
	strength := adx / 100
	metrics := map[string]float64{
		"adx":            adx,
		"trend_strength": strength,
	}

	shortUp := fast > medium
	longUp := medium > slow
	switch {
	case shortUp && longUp:
		return signal(models.Bullish, strength, metrics)
	case !shortUp && !longUp:
		return signal(models.Bearish, strength, metrics)
	default:
		return neutral(metrics)
	}
}
