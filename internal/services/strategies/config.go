package strategies

import (
	"fmt"
	"math"
)

// Strategy names, also used as report keys.
const (
	NameTrendFollowing       = "trend_following"
	NameMeanReversion        = "mean_reversion"
	NameMomentum             = "momentum"
	NameVolatility           = "volatility"
	NameStatisticalArbitrage = "statistical_arbitrage"
)

// Window is a rolling lookback and the number of defined observations it
// needs before it yields a value.
type Window struct {
	Size       int
	MinPeriods int
}

type TrendConfig struct {
	FastEMA   int
	MediumEMA int
	SlowEMA   int
	ADXPeriod int
}

type MeanReversionConfig struct {
	ZWindow         int
	BollingerWindow int
	BollingerK      float64
	RSIFast         int
	RSISlow         int
}

type MomentumConfig struct {
	OneMonth    Window
	ThreeMonth  Window
	SixMonth    Window
	VolumeMean  Window
	BlendWeight [3]float64
}

type VolatilityConfig struct {
	Historical      Window
	Regime          Window
	ATRPeriod       int
	ATRMinPeriods   int
	AnnualizeFactor float64
}

type StatArbConfig struct {
	Moments     Window
	HurstMaxLag int
}

// Weights are the ensemble weights per strategy.
type Weights struct {
	TrendFollowing       float64
	MeanReversion        float64
	Momentum             float64
	Volatility           float64
	StatisticalArbitrage float64
}

// Sum adds all weights.
func (w Weights) Sum() float64 {
	return w.TrendFollowing + w.MeanReversion + w.Momentum + w.Volatility + w.StatisticalArbitrage
}

// Config carries every window and weight of the strategy ensemble.
type Config struct {
	Trend         TrendConfig
	MeanReversion MeanReversionConfig
	Momentum      MomentumConfig
	Volatility    VolatilityConfig
	StatArb       StatArbConfig
	Weights       Weights
}

// DefaultConfig returns the stock windows and weights.
func DefaultConfig() Config {
	return Config{
		Trend: TrendConfig{FastEMA: 8, MediumEMA: 21, SlowEMA: 55, ADXPeriod: 14},
		MeanReversion: MeanReversionConfig{
			ZWindow:         50,
			BollingerWindow: 20,
			BollingerK:      2,
			RSIFast:         14,
			RSISlow:         28,
		},
		Momentum: MomentumConfig{
			OneMonth:    Window{Size: 21, MinPeriods: 5},
			ThreeMonth:  Window{Size: 63, MinPeriods: 42},
			SixMonth:    Window{Size: 126, MinPeriods: 63},
			VolumeMean:  Window{Size: 21, MinPeriods: 10},
			BlendWeight: [3]float64{0.2, 0.3, 0.5},
		},
		Volatility: VolatilityConfig{
			Historical:      Window{Size: 21, MinPeriods: 10},
			Regime:          Window{Size: 42, MinPeriods: 21},
			ATRPeriod:       14,
			ATRMinPeriods:   7,
			AnnualizeFactor: 252,
		},
		StatArb: StatArbConfig{
			Moments:     Window{Size: 42, MinPeriods: 21},
			HurstMaxLag: 10,
		},
		Weights: Weights{
			TrendFollowing:       0.30,
			MeanReversion:        0.25,
			Momentum:             0.25,
			Volatility:           0.15,
			StatisticalArbitrage: 0.05,
		},
	}
}

// Validate checks that windows are positive and weights form a distribution.
func (c Config) Validate() error {
	positive := map[string]int{
		"trend.fast_ema":           c.Trend.FastEMA,
		"trend.medium_ema":         c.Trend.MediumEMA,
		"trend.slow_ema":           c.Trend.SlowEMA,
		"trend.adx_period":         c.Trend.ADXPeriod,
		"mean_reversion.z_window":  c.MeanReversion.ZWindow,
		"mean_reversion.bb_window": c.MeanReversion.BollingerWindow,
		"mean_reversion.rsi_fast":  c.MeanReversion.RSIFast,
		"mean_reversion.rsi_slow":  c.MeanReversion.RSISlow,
		"momentum.one_month":       c.Momentum.OneMonth.Size,
		"momentum.three_month":     c.Momentum.ThreeMonth.Size,
		"momentum.six_month":       c.Momentum.SixMonth.Size,
		"momentum.volume_mean":     c.Momentum.VolumeMean.Size,
		"volatility.historical":    c.Volatility.Historical.Size,
		"volatility.regime":        c.Volatility.Regime.Size,
		"volatility.atr_period":    c.Volatility.ATRPeriod,
		"stat_arb.moments":         c.StatArb.Moments.Size,
		"stat_arb.hurst_max_lag":   c.StatArb.HurstMaxLag,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("strategies: %s must be > 0, got %d", name, v)
		}
	}
	if c.StatArb.HurstMaxLag < 3 {
		return fmt.Errorf("strategies: stat_arb.hurst_max_lag must be >= 3, got %d", c.StatArb.HurstMaxLag)
	}
	if c.MeanReversion.BollingerK <= 0 {
		return fmt.Errorf("strategies: mean_reversion.bb_k must be > 0")
	}
	if c.Volatility.AnnualizeFactor <= 0 {
		return fmt.Errorf("strategies: volatility.annualize_factor must be > 0")
	}
	w := c.Weights
	for _, v := range []float64{w.TrendFollowing, w.MeanReversion, w.Momentum, w.Volatility, w.StatisticalArbitrage} {
		if v < 0 || !isFinite(v) {
			return fmt.Errorf("strategies: weights must be finite and non-negative")
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("strategies: weights must sum to 1, got %.12f", sum)
	}
	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
