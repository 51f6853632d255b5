package strategies

import (
	"math"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/features"
	"TechAnalyst/internal/services/indicators"
)

const momentumThreshold = 0.05

// Momentum blends 1/3/6 month return sums and requires above-average volume.
type Momentum struct {
	cfg MomentumConfig
}

func NewMomentum(cfg MomentumConfig) *Momentum {
	return &Momentum{cfg: cfg}
}

func (s *Momentum) Name() string { return NameMomentum }

func (s *Momentum) Metrics() []string {
	return []string{"momentum_1m", "momentum_3m", "momentum_6m", "volume_momentum"}
}

func (s *Momentum) Evaluate(series models.PriceSeries) models.StrategySignal {
	returns := features.Returns(series)
	sum := func(w Window) float64 {
		return indicators.RollingSum(returns, w.Size, w.MinPeriods).Last()
	}

	// Longer horizons fall back to the next shorter one.
	m1 := indicators.Or(sum(s.cfg.OneMonth), 0)
	m3 := indicators.Or(sum(s.cfg.ThreeMonth), m1)
	m6 := indicators.Or(sum(s.cfg.SixMonth), m3)

	volumes := series.Volumes()
	volumeMean := indicators.RollingMean(volumes, s.cfg.VolumeMean.Size, s.cfg.VolumeMean.MinPeriods).Last()
	volumeMomentum := indicators.Or(indicators.Series(volumes).Last()/volumeMean, 1.0)

	metrics := map[string]float64{
		"momentum_1m":     m1,
		"momentum_3m":     m3,
		"momentum_6m":     m6,
		"volume_momentum": volumeMomentum,
	}

	bw := s.cfg.BlendWeight
	score := bw[0]*m1 + bw[1]*m3 + bw[2]*m6
	confirmed := volumeMomentum > 1
	confidence := math.Abs(score) * 5
	switch {
	case score > momentumThreshold && confirmed:
		return signal(models.Bullish, confidence, metrics)
	case score < -momentumThreshold && confirmed:
		return signal(models.Bearish, confidence, metrics)
	default:
		return neutral(metrics)
	}
}
