package indicators

// OBV is on-balance volume starting at zero: volume is added on an up
// close, subtracted on a down close and ignored on an unchanged close.
func OBV(close, volume []float64) Series {
	out := make(Series, len(close))
	for i := 1; i < len(close); i++ {
		switch {
		case close[i] > close[i-1]:
			out[i] = out[i-1] + volume[i]
		case close[i] < close[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// Slope is the mean of the last n first differences of s, skipping
// undefined ones. ok is false when none is defined.
func Slope(s Series, n int) (float64, bool) {
	d := Diff(s)
	if len(d) > n {
		d = d[len(d)-n:]
	}
	return MeanDefined(d)
}
