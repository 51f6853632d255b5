package indicators

import "math"

const randomWalkHurst = 0.5

// Hurst estimates the Hurst exponent of a price series from log returns:
// for each lag in [2, maxLag) it takes sqrt(std(r[lag:]-r[:-lag])) and
// regresses its log on log lag. The slope is clamped to [0, 1]. Too few
// returns (under 2*maxLag) or a degenerate fit give 0.5.
func Hurst(close []float64, maxLag int) float64 {
	returns := make([]float64, 0, len(close))
	for i := 1; i < len(close); i++ {
		r := math.Log(close[i] / close[i-1])
		if Defined(r) {
			returns = append(returns, r)
		}
	}
	if len(returns) < 2*maxLag {
		return randomWalkHurst
	}

	xs := make([]float64, 0, maxLag)
	ys := make([]float64, 0, maxLag)
	for lag := 2; lag < maxLag; lag++ {
		diffs := make([]float64, len(returns)-lag)
		for j := range diffs {
			diffs[j] = returns[j+lag] - returns[j]
		}
		tau := math.Max(1e-8, math.Sqrt(popStd(diffs)))
		xs = append(xs, math.Log(float64(lag)))
		ys = append(ys, math.Log(tau))
	}

	slope, ok := linearSlope(xs, ys)
	if !ok {
		return randomWalkHurst
	}
	return math.Max(0, math.Min(1, slope))
}

func popStd(xs []float64) float64 {
	m := mean(xs)
	ss := 0.0
	for _, v := range xs {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// linearSlope is the least-squares slope of y on x.
func linearSlope(xs, ys []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx float64
	for i := range xs {
		sxy += (xs[i] - mx) * (ys[i] - my)
		sxx += (xs[i] - mx) * (xs[i] - mx)
	}
	if sxx == 0 {
		return 0, false
	}
	slope := sxy / sxx
	if !Defined(slope) {
		return 0, false
	}
	return slope, true
}
