package strategies

import (
	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/features"
	"TechAnalyst/internal/services/indicators"
)

const (
	hurstThreshold = 0.4
	skewThreshold  = 1.0
	normalKurtosis = 3.0
)

// StatisticalArbitrage trades skew in anti-persistent (low Hurst) series.
type StatisticalArbitrage struct {
	cfg StatArbConfig
}

func NewStatisticalArbitrage(cfg StatArbConfig) *StatisticalArbitrage {
	return &StatisticalArbitrage{cfg: cfg}
}

func (s *StatisticalArbitrage) Name() string { return NameStatisticalArbitrage }

func (s *StatisticalArbitrage) Metrics() []string {
	return []string{"hurst_exponent", "skewness", "kurtosis"}
}

func (s *StatisticalArbitrage) Evaluate(series models.PriceSeries) models.StrategySignal {
	returns := features.Returns(series)
	w := s.cfg.Moments
	skew := indicators.Or(indicators.RollingSkew(returns, w.Size, w.MinPeriods).Last(), 0)
	kurt := indicators.Or(indicators.RollingKurt(returns, w.Size, w.MinPeriods).Last(), normalKurtosis)
	hurst := indicators.Hurst(series.Closes(), s.cfg.HurstMaxLag)

	metrics := map[string]float64{
		"hurst_exponent": hurst,
		"skewness":       skew,
		"kurtosis":       kurt,
	}

	if hurst >= hurstThreshold {
		return neutral(metrics)
	}
	confidence := (0.5 - hurst) * 2
	switch {
	case skew > skewThreshold:
		return signal(models.Bullish, confidence, metrics)
	case skew < -skewThreshold:
		return signal(models.Bearish, confidence, metrics)
	default:
		return neutral(metrics)
	}
}
