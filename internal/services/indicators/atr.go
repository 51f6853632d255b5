package indicators

// ATR is the rolling mean of the true range over period bars, defined once
// minPeriods bars are available.
func ATR(high, low, close []float64, period, minPeriods int) Series {
	return RollingMean(TrueRange(high, low, close), period, minPeriods)
}
