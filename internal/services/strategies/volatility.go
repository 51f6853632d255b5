package strategies

import (
	"math"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/features"
	"TechAnalyst/internal/services/indicators"
)

const (
	lowRegime  = 0.8
	highRegime = 1.2
	regimeZ    = 1.0
)

// Volatility compares current realised volatility with its own recent
// history. Calm regimes lean bullish, stressed ones bearish.
type Volatility struct {
	cfg VolatilityConfig
}

func NewVolatility(cfg VolatilityConfig) *Volatility {
	return &Volatility{cfg: cfg}
}

func (s *Volatility) Name() string { return NameVolatility }

func (s *Volatility) Metrics() []string {
	return []string{"historical_volatility", "volatility_regime", "volatility_z_score", "atr_ratio"}
}

func (s *Volatility) Evaluate(series models.PriceSeries) models.StrategySignal {
	returns := features.Returns(series)
	hv := indicators.RollingStd(returns, s.cfg.Historical.Size, s.cfg.Historical.MinPeriods)
	annualize := math.Sqrt(s.cfg.AnnualizeFactor)
	for i := range hv {
		hv[i] *= annualize
	}

	hvMean := indicators.RollingMean(hv, s.cfg.Regime.Size, s.cfg.Regime.MinPeriods).Last()
	hvStd := indicators.RollingStd(hv, s.cfg.Regime.Size, s.cfg.Regime.MinPeriods).Last()
	current := hv.Last()

	regime := indicators.Or(current/hvMean, 1.0)
	z := 0.0
	if hvStd != 0 {
		z = indicators.Or((current-hvMean)/hvStd, 0)
	}

	closes := series.Closes()
	atr := indicators.ATR(series.Highs(), series.Lows(), closes, s.cfg.ATRPeriod, s.cfg.ATRMinPeriods).Last()

	metrics := map[string]float64{
		"historical_volatility": indicators.Or(current, 0),
		"volatility_regime":     regime,
		"volatility_z_score":    z,
		"atr_ratio":             indicators.Or(atr/indicators.Series(closes).Last(), 0),
	}

	confidence := math.Abs(z) / 3
	switch {
	case regime < lowRegime && z < -regimeZ:
		return signal(models.Bullish, confidence, metrics)
	case regime > highRegime && z > regimeZ:
		return signal(models.Bearish, confidence, metrics)
	default:
		return neutral(metrics)
	}
}
