package features

import (
	"math"
	"time"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/indicators"
)

// TradingDaysPerYear annualises daily volatility.
const TradingDaysPerYear = 252

// Returns computes simple returns r_t = C_t / C_{t-1} - 1, aligned with
// the series (the first position is undefined).
func Returns(series models.PriceSeries) indicators.Series {
	return indicators.PctChange(series.Closes())
}

// ComputeLogReturns computes log returns r_t = ln(C_t / C_{t-1}).
// It returns a slice of length len(series)-1, or nil if insufficient data.
func ComputeLogReturns(series models.PriceSeries) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		cur := series[i].Close
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// RealizedVolatility computes annualized realized volatility over the last
// window returns using the provided number of bars per year.
func RealizedVolatility(logReturns []float64, window int, barsPerYear float64) float64 {
	if window <= 1 || len(logReturns) < window {
		return 0
	}
	sd := indicators.RollingStd(logReturns[len(logReturns)-window:], window, window).Last()
	if !indicators.Defined(sd) {
		return 0
	}
	return sd * math.Sqrt(barsPerYear)
}

// BarsPerYearForTF returns the approximate number of bars per year for a timeframe.
func BarsPerYearForTF(tf string) float64 {
	switch tf {
	case "1h":
		return TradingDaysPerYear * 6.5
	default:
		return TradingDaysPerYear
	}
}

// AlignFromTo rounds time range to bar boundaries based on timeframe.
func AlignFromTo(from, to time.Time, tf string) (time.Time, time.Time) {
	switch tf {
	case "1h":
		from = from.Truncate(time.Hour)
		to = to.Truncate(time.Hour)
	default:
		d := 24 * time.Hour
		from = from.UTC().Truncate(d)
		to = to.UTC().Truncate(d)
	}
	return from, to
}
