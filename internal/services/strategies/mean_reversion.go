package strategies

import (
	"math"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/indicators"
)

const (
	meanReversionZ     = 2.0
	bandLowerThreshold = 0.2
	bandUpperThreshold = 0.8
)

// MeanReversion fades stretched prices: a large z-score confirmed by the
// Bollinger band position.
type MeanReversion struct {
	cfg MeanReversionConfig
}

func NewMeanReversion(cfg MeanReversionConfig) *MeanReversion {
	return &MeanReversion{cfg: cfg}
}

func (s *MeanReversion) Name() string { return NameMeanReversion }

func (s *MeanReversion) Metrics() []string {
	return []string{"z_score", "price_vs_bb", "rsi_14", "rsi_28"}
}

func (s *MeanReversion) Evaluate(series models.PriceSeries) models.StrategySignal {
	closes := series.Closes()
	last := indicators.Series(closes).Last()

	ma := indicators.SMA(closes, s.cfg.ZWindow).Last()
	sd := indicators.RollingStd(closes, s.cfg.ZWindow, s.cfg.ZWindow).Last()
	z := indicators.Or((last-ma)/sd, 0)

	bb := indicators.Bollinger(closes, s.cfg.BollingerWindow, s.cfg.BollingerK)
	pos := indicators.Or(bb.Position(last), 0.5)

	metrics := map[string]float64{
		"z_score":     z,
		"price_vs_bb": pos,
		"rsi_14":      indicators.Or(indicators.RSI(closes, s.cfg.RSIFast).Last(), 50),
		"rsi_28":      indicators.Or(indicators.RSI(closes, s.cfg.RSISlow).Last(), 50),
	}

	confidence := math.Abs(z) / 4
	switch {
	case z < -meanReversionZ && pos < bandLowerThreshold:
		return signal(models.Bullish, confidence, metrics)
	case z > meanReversionZ && pos > bandUpperThreshold:
		return signal(models.Bearish, confidence, metrics)
	default:
		return neutral(metrics)
	}
}
