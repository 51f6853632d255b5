package indicators

// BollingerResult holds the three bands.
type BollingerResult struct {
	Upper  Series
	Middle Series
	Lower  Series
}

// Bollinger returns SMA(window) +- k sample standard deviations.
func Bollinger(close []float64, window int, k float64) BollingerResult {
	mid := SMA(close, window)
	sd := RollingStd(close, window, window)
	up := make(Series, len(close))
	lo := make(Series, len(close))
	for i := range close {
		up[i] = mid[i] + k*sd[i]
		lo[i] = mid[i] - k*sd[i]
	}
	return BollingerResult{Upper: up, Middle: mid, Lower: lo}
}

// Position locates price within the bands: 0 at the lower band, 1 at the
// upper. It is NaN when the bands are undefined or collapsed.
func (b BollingerResult) Position(price float64) float64 {
	lo, up := b.Lower.Last(), b.Upper.Last()
	return (price - lo) / (up - lo)
}
