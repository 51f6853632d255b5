package indicators

import "math"

// ADXResult holds the average directional index and the directional
// indicators it is built from.
type ADXResult struct {
	ADX     Series
	PlusDI  Series
	MinusDI Series
}

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|). The first
// bar has no previous close and uses high-low.
func TrueRange(high, low, close []float64) Series {
	out := make(Series, len(high))
	for i := range high {
		tr := high[i] - low[i]
		if i > 0 {
			tr = math.Max(tr, math.Abs(high[i]-close[i-1]))
			tr = math.Max(tr, math.Abs(low[i]-close[i-1]))
		}
		out[i] = tr
	}
	return out
}

// ADX computes +DI, -DI and ADX with history-normalised exponential
// smoothing of span period.
func ADX(high, low, close []float64, period int) ADXResult {
	n := len(high)
	tr := TrueRange(high, low, close)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := high[i] - high[i-1]
		down := low[i-1] - low[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	str := AdjustedEMA(tr, period)
	spdm := AdjustedEMA(plusDM, period)
	smdm := AdjustedEMA(minusDM, period)

	plusDI := make(Series, n)
	minusDI := make(Series, n)
	dx := make(Series, n)
	for i := 0; i < n; i++ {
		plusDI[i] = 100 * spdm[i] / str[i]
		minusDI[i] = 100 * smdm[i] / str[i]
		sum := plusDI[i] + minusDI[i]
		if sum == 0 || !Defined(sum) {
			dx[i] = math.NaN()
			continue
		}
		dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / sum
	}
	return ADXResult{ADX: AdjustedEMA(dx, period), PlusDI: plusDI, MinusDI: minusDI}
}
