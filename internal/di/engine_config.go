package di

import (
	"fmt"

	"TechAnalyst/internal/services/analytics"
	"TechAnalyst/internal/services/strategies"
	"TechAnalyst/pkg/config"
)

// EngineConfig overlays the analysis section onto the engine defaults. Zero
// values keep the default. Weights, when given, must name every strategy
// they set; missing strategies keep their default weight.
func EngineConfig(a config.Analysis) (analytics.Config, error) {
	out := analytics.DefaultConfig()
	s := &out.Strategies

	setInt(&s.Trend.FastEMA, a.Trend.FastEMA)
	setInt(&s.Trend.MediumEMA, a.Trend.MediumEMA)
	setInt(&s.Trend.SlowEMA, a.Trend.SlowEMA)
	setInt(&s.Trend.ADXPeriod, a.Trend.ADXPeriod)

	setInt(&s.MeanReversion.ZWindow, a.MeanReversion.ZWindow)
	setInt(&s.MeanReversion.BollingerWindow, a.MeanReversion.BollingerWindow)
	if a.MeanReversion.BollingerK > 0 {
		s.MeanReversion.BollingerK = a.MeanReversion.BollingerK
	}

	setWindow(&s.Momentum.OneMonth, a.Momentum.OneMonth)
	setWindow(&s.Momentum.ThreeMonth, a.Momentum.ThreeMonth)
	setWindow(&s.Momentum.SixMonth, a.Momentum.SixMonth)
	setWindow(&s.Momentum.VolumeMean, a.Momentum.VolumeMean)

	setWindow(&s.Volatility.Historical, a.Volatility.Historical)
	setWindow(&s.Volatility.Regime, a.Volatility.Regime)

	setWindow(&s.StatArb.Moments, a.StatArb.Moments)
	setInt(&s.StatArb.HurstMaxLag, a.StatArb.HurstMaxLag)

	for name, w := range a.Weights {
		switch name {
		case strategies.NameTrendFollowing:
			s.Weights.TrendFollowing = w
		case strategies.NameMeanReversion:
			s.Weights.MeanReversion = w
		case strategies.NameMomentum:
			s.Weights.Momentum = w
		case strategies.NameVolatility:
			s.Weights.Volatility = w
		case strategies.NameStatisticalArbitrage:
			s.Weights.StatisticalArbitrage = w
		default:
			return analytics.Config{}, fmt.Errorf("analysis.weights: unknown strategy %q", name)
		}
	}

	if err := out.Validate(); err != nil {
		return analytics.Config{}, err
	}
	return out, nil
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setWindow(dst *strategies.Window, w config.Window) {
	setInt(&dst.Size, w.Size)
	setInt(&dst.MinPeriods, w.MinPeriods)
}
