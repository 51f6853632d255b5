package indicators

import "math"

// RSI is the relative strength index over simple averages of gains and
// losses. The first bar contributes a zero delta. A window without losses
// yields 100.
func RSI(close []float64, period int) Series {
	n := len(close)
	gain := make([]float64, n)
	loss := make([]float64, n)
	for i := 1; i < n; i++ {
		d := close[i] - close[i-1]
		if d > 0 {
			gain[i] = d
		} else if d < 0 {
			loss[i] = -d
		}
	}
	avgGain := SMA(gain, period)
	avgLoss := SMA(loss, period)

	out := undefined(n)
	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		if math.IsNaN(g) || math.IsNaN(l) {
			continue
		}
		if l <= 0 {
			out[i] = 100
			continue
		}
		out[i] = 100 - 100/(1+g/l)
	}
	return out
}
