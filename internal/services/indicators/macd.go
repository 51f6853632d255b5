package indicators

// MACDResult holds the MACD line, its signal line and their difference.
type MACDResult struct {
	MACD      Series
	Signal    Series
	Histogram Series
}

// MACD computes EMA(fast)-EMA(slow) and its EMA(signal).
func MACD(close []float64, fast, slow, signal int) MACDResult {
	line := Sub(EMA(close, fast), EMA(close, slow))
	sig := EMA(line, signal)
	return MACDResult{MACD: line, Signal: sig, Histogram: Sub(line, sig)}
}

// CrossOver reports whether a crossed above b on the last bar.
func CrossOver(a, b Series) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	return a.At(-2) < b.At(-2) && a.At(-1) > b.At(-1)
}

// CrossUnder reports whether a crossed below b on the last bar.
func CrossUnder(a, b Series) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	return a.At(-2) > b.At(-2) && a.At(-1) < b.At(-1)
}
