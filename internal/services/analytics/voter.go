package analytics

import (
	"fmt"
	"math"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/indicators"
)

// Reasoning keys of the basic vote, in display order.
const (
	IndicatorMACD      = "MACD"
	IndicatorRSI       = "RSI"
	IndicatorBollinger = "Bollinger"
	IndicatorOBV       = "OBV"
)

var basicIndicators = []string{IndicatorMACD, IndicatorRSI, IndicatorBollinger, IndicatorOBV}

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
	rsiNeutral    = 50.0
)

// dropRule boosts a bullish vote after a sharp fall into a weak RSI.
type dropRule struct {
	maxReturn float64
	maxRSI    float64
	boost     float64
}

var dropRules = []dropRule{
	{maxReturn: -0.05, maxRSI: 40, boost: 0.2},
	{maxReturn: -0.03, maxRSI: 45, boost: 0.1},
}

type voter struct {
	cfg VoterConfig
}

func (v voter) vote(series models.PriceSeries) models.BasicVote {
	closes := series.Closes()
	last := indicators.Series(closes).Last()

	macd := indicators.MACD(closes, v.cfg.MACDFast, v.cfg.MACDSlow, v.cfg.MACDSignal)
	var macdLabel models.SignalLabel
	switch {
	case indicators.CrossOver(macd.MACD, macd.Signal):
		macdLabel = models.Bullish
	case indicators.CrossUnder(macd.MACD, macd.Signal):
		macdLabel = models.Bearish
	}

	rsi := indicators.Or(indicators.RSI(closes, v.cfg.RSIPeriod).Last(), rsiNeutral)
	var rsiLabel models.SignalLabel
	switch {
	case rsi < rsiOversold:
		rsiLabel = models.Bullish
	case rsi > rsiOverbought:
		rsiLabel = models.Bearish
	}

	bb := indicators.Bollinger(closes, v.cfg.BollingerWindow, v.cfg.BollingerK)
	var bbLabel models.SignalLabel
	switch {
	case last < bb.Lower.Last():
		bbLabel = models.Bullish
	case last > bb.Upper.Last():
		bbLabel = models.Bearish
	}

	obvSlope, _ := indicators.Slope(indicators.OBV(closes, series.Volumes()), v.cfg.OBVSlopeBars)
	var obvLabel models.SignalLabel
	switch {
	case obvSlope > 0:
		obvLabel = models.Bullish
	case obvSlope < 0:
		obvLabel = models.Bearish
	}

	tally := []models.SignalLabel{macdLabel, rsiLabel, bbLabel, obvLabel}
	boost := 0.0
	drop := priceDrop(closes, v.cfg.DropLookback)
	for _, r := range dropRules {
		if drop < r.maxReturn && rsi < r.maxRSI {
			tally = append(tally, models.Bullish)
			boost = r.boost
			break
		}
	}

	outcome, confidence := decide(tally, boost)

	return models.BasicVote{
		Signal:     outcome,
		Confidence: confidence,
		Reasoning: map[string]models.IndicatorReasoning{
			IndicatorMACD: {
				Signal:  macdLabel,
				Details: fmt.Sprintf("MACD Line crossed %s Signal Line", pick(macdLabel, "above", "below", "neither above nor below")),
			},
			IndicatorRSI: {
				Signal:  rsiLabel,
				Details: fmt.Sprintf("RSI is %.2f (%s)", rsi, pick(rsiLabel, "oversold", "overbought", "neutral")),
			},
			IndicatorBollinger: {
				Signal:  bbLabel,
				Details: "Price is " + pick(bbLabel, "below lower band", "above upper band", "within bands"),
			},
			IndicatorOBV: {
				Signal:  obvLabel,
				Details: fmt.Sprintf("OBV slope is %.2f (%s)", obvSlope, obvLabel),
			},
		},
	}
}

// decide takes the majority of the tally. Confidence is the winning count
// over the four indicators, plus boost when the outcome is bullish.
func decide(tally []models.SignalLabel, boost float64) (models.SignalLabel, float64) {
	bull, bear := 0, 0
	for _, l := range tally {
		switch l {
		case models.Bullish:
			bull++
		case models.Bearish:
			bear++
		}
	}
	outcome := models.Neutral
	switch {
	case bull > bear:
		outcome = models.Bullish
	case bear > bull:
		outcome = models.Bearish
	}
	confidence := float64(max(bull, bear)) / float64(len(basicIndicators))
	if outcome == models.Bullish {
		confidence += boost
	}
	return outcome, math.Min(1, confidence)
}

// priceDrop is the return from close[n-lookback] to the last close, 0 when
// the series is shorter than lookback.
func priceDrop(closes []float64, lookback int) float64 {
	n := len(closes)
	if n < lookback {
		return 0
	}
	base := closes[n-lookback]
	return (closes[n-1] - base) / base
}

func pick(l models.SignalLabel, bullish, bearish, neutral string) string {
	switch l {
	case models.Bullish:
		return bullish
	case models.Bearish:
		return bearish
	default:
		return neutral
	}
}
