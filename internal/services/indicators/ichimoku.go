package indicators

// IchimokuResult holds the five cloud lines.
type IchimokuResult struct {
	Tenkan  Series
	Kijun   Series
	SenkouA Series
	SenkouB Series
	Chikou  Series
}

const (
	ichimokuTenkan       = 9
	ichimokuKijun        = 26
	ichimokuSenkouB      = 52
	ichimokuDisplacement = 26
)

// Ichimoku computes the cloud with the standard 9/26/52 windows and a 26 bar
// displacement.
func Ichimoku(high, low, close []float64) IchimokuResult {
	tenkan := midpoint(high, low, ichimokuTenkan)
	kijun := midpoint(high, low, ichimokuKijun)
	spanA := make(Series, len(close))
	for i := range spanA {
		spanA[i] = (tenkan[i] + kijun[i]) / 2
	}
	return IchimokuResult{
		Tenkan:  tenkan,
		Kijun:   kijun,
		SenkouA: Shift(spanA, ichimokuDisplacement),
		SenkouB: Shift(midpoint(high, low, ichimokuSenkouB), ichimokuDisplacement),
		Chikou:  Shift(close, -ichimokuDisplacement),
	}
}

func midpoint(high, low []float64, window int) Series {
	hi := RollingMax(high, window)
	lo := RollingMin(low, window)
	out := make(Series, len(high))
	for i := range out {
		out[i] = (hi[i] + lo[i]) / 2
	}
	return out
}
