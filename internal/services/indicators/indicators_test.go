package indicators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestEMARecursive(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 3)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2.25}, []float64(got), 1e-12)
}

func TestAdjustedEMA(t *testing.T) {
	got := AdjustedEMA([]float64{1, 2, 3}, 3)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 5.0/3.0, got[1], 1e-12)
	assert.InDelta(t, 4.25/1.75, got[2], 1e-12)
}

func TestAdjustedEMASkipsUndefined(t *testing.T) {
	got := AdjustedEMA([]float64{1, math.NaN(), 3}, 3)
	assert.InDelta(t, 1.0, got[1], 1e-12)
	assert.InDelta(t, 2.6, got[2], 1e-12)

	lead := AdjustedEMA([]float64{math.NaN(), 4, 4}, 3)
	assert.True(t, math.IsNaN(lead[0]))
	assert.Equal(t, 4.0, lead[1])
	assert.Equal(t, 4.0, lead[2])
}

func TestMACDFlatSeries(t *testing.T) {
	res := MACD(constant(40, 10), 12, 26, 9)
	for i := range res.MACD {
		assert.Equal(t, 0.0, res.MACD[i])
		assert.Equal(t, 0.0, res.Signal[i])
	}
	assert.False(t, CrossOver(res.MACD, res.Signal))
	assert.False(t, CrossUnder(res.MACD, res.Signal))
}

func TestCrossOver(t *testing.T) {
	a := Series{1, 3}
	b := Series{2, 2}
	assert.True(t, CrossOver(a, b))
	assert.False(t, CrossUnder(a, b))
	assert.True(t, CrossUnder(b, a))
	assert.False(t, CrossOver(Series{1}, Series{0}))
}

func TestRSIStrictlyIncreasingIsHundred(t *testing.T) {
	rsi := RSI(ramp(30, 1, 1), 14)
	for i := 0; i < 13; i++ {
		assert.True(t, math.IsNaN(rsi[i]), "index %d should be undefined", i)
	}
	for i := 13; i < len(rsi); i++ {
		assert.Equal(t, 100.0, rsi[i])
	}
}

func TestRSIBalancedWindow(t *testing.T) {
	rsi := RSI([]float64{10, 11, 10}, 2)
	assert.True(t, math.IsNaN(rsi[0]))
	assert.Equal(t, 100.0, rsi[1])
	assert.InDelta(t, 50.0, rsi[2], 1e-12)
}

func TestRSIFlatSeriesIsHundred(t *testing.T) {
	rsi := RSI(constant(20, 5), 14)
	assert.Equal(t, 100.0, rsi.Last())
}

func TestBollinger(t *testing.T) {
	bb := Bollinger([]float64{1, 2, 3}, 3, 2)
	assert.True(t, math.IsNaN(bb.Upper[1]))
	assert.InDelta(t, 2.0, bb.Middle[2], 1e-12)
	assert.InDelta(t, 4.0, bb.Upper[2], 1e-12)
	assert.InDelta(t, 0.0, bb.Lower[2], 1e-12)
	assert.InDelta(t, 0.5, bb.Position(2), 1e-12)
}

func TestBollingerShortSeries(t *testing.T) {
	bb := Bollinger([]float64{1, 2}, 20, 2)
	assert.True(t, math.IsNaN(bb.Position(2)))
}

func TestOBVCumulative(t *testing.T) {
	const n, v = 25, 1500.0
	obv := OBV(ramp(n, 10, 0.5), constant(n, v))
	assert.Equal(t, 0.0, obv[0])
	assert.Equal(t, float64(n-1)*v, obv[n-1])
}

func TestOBVTies(t *testing.T) {
	obv := OBV([]float64{1, 2, 2, 1}, []float64{10, 20, 30, 40})
	assert.Equal(t, Series{0, 20, 20, -20}, obv)
}

func TestSlope(t *testing.T) {
	s, ok := Slope(Series{0, 20, 20, -20}, 5)
	require.True(t, ok)
	assert.InDelta(t, -20.0/3.0, s, 1e-12)

	_, ok = Slope(Series{0}, 5)
	assert.False(t, ok)
}

func TestRollingMinPeriods(t *testing.T) {
	got := RollingMean([]float64{math.NaN(), 1, 2, 3}, 3, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 1.5, got[2])
	assert.Equal(t, 2.0, got[3])

	sum := RollingSum([]float64{1, 2, 3, 4}, 2, 0)
	assert.True(t, math.IsNaN(sum[0]))
	assert.Equal(t, 7.0, sum[3])
}

func TestRollingStdIsSample(t *testing.T) {
	got := RollingStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 8)
	assert.InDelta(t, math.Sqrt(32.0/7.0), got.Last(), 1e-12)

	single := RollingStd([]float64{3}, 5, 1)
	assert.True(t, math.IsNaN(single[0]))
}

func TestRollingSkewKurt(t *testing.T) {
	assert.InDelta(t, 0.935219, RollingSkew([]float64{1, 2, 4}, 3, 3).Last(), 1e-5)
	assert.InDelta(t, 0.0, RollingSkew([]float64{1, 2, 3}, 3, 3).Last(), 1e-12)
	assert.InDelta(t, -1.2, RollingKurt([]float64{1, 2, 3, 4}, 4, 4).Last(), 1e-12)

	assert.True(t, math.IsNaN(RollingSkew(constant(10, 1), 10, 3).Last()))
	assert.True(t, math.IsNaN(RollingKurt([]float64{1, 2, 3}, 3, 1).Last()))
}

func TestSMAShortInput(t *testing.T) {
	got := SMA([]float64{1, 2}, 5)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[1]))

	full := SMA([]float64{1, 2, 3, 4}, 2)
	assert.True(t, math.IsNaN(full[0]))
	assert.InDeltaSlice(t, []float64{1.5, 2.5, 3.5}, []float64(full[1:]), 1e-12)
}

func TestTrueRange(t *testing.T) {
	tr := TrueRange([]float64{11, 12}, []float64{9, 11.5}, []float64{10, 12})
	assert.Equal(t, 2.0, tr[0])
	assert.Equal(t, 2.0, tr[1])
}

func trendBars(n int) (high, low, close []float64) {
	close = ramp(n, 10, 1)
	high = ramp(n, 11, 1)
	low = ramp(n, 9, 1)
	return
}

func TestADXSteadyUptrend(t *testing.T) {
	h, l, c := trendBars(60)
	res := ADX(h, l, c, 14)
	assert.True(t, math.IsNaN(res.ADX[0]))
	assert.InDelta(t, 100.0, res.ADX.Last(), 1e-9)
	assert.Greater(t, res.PlusDI.Last(), 0.0)
	assert.Equal(t, 0.0, res.MinusDI.Last())
}

func TestADXFlatBarsUndefined(t *testing.T) {
	flat := constant(30, 10)
	res := ADX(flat, flat, flat, 14)
	assert.False(t, Defined(res.ADX.Last()))
}

func TestATRMinPeriods(t *testing.T) {
	h, l, c := trendBars(20)
	atr := ATR(h, l, c, 14, 7)
	assert.True(t, math.IsNaN(atr[5]))
	assert.InDelta(t, 2.0, atr[6], 1e-12)
	assert.InDelta(t, 2.0, atr.Last(), 1e-12)
}

func TestIchimokuAlignment(t *testing.T) {
	h, l, c := trendBars(60)
	ich := Ichimoku(h, l, c)
	assert.True(t, math.IsNaN(ich.Tenkan[7]))
	assert.InDelta(t, (h[8]+l[0])/2, ich.Tenkan[8], 1e-12)
	assert.True(t, math.IsNaN(ich.Kijun[24]))
	assert.False(t, math.IsNaN(ich.Kijun[25]))
	assert.True(t, math.IsNaN(ich.SenkouA[50]))
	assert.InDelta(t, (ich.Tenkan[25]+ich.Kijun[25])/2, ich.SenkouA[51], 1e-12)
	for _, v := range ich.SenkouB {
		assert.True(t, math.IsNaN(v))
	}
	assert.Equal(t, c[26], ich.Chikou[0])
	assert.True(t, math.IsNaN(ich.Chikou.Last()))
}

func TestHurstShortSeriesIsRandomWalk(t *testing.T) {
	assert.Equal(t, 0.5, Hurst(ramp(15, 100, 1), 10))
	assert.Equal(t, 0.5, Hurst(nil, 10))
}

func TestHurstBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	prices := make([]float64, 200)
	prices[0] = 100
	for i := 1; i < len(prices); i++ {
		prices[i] = prices[i-1] * math.Exp(rng.NormFloat64()*0.01)
	}
	h := Hurst(prices, 10)
	assert.GreaterOrEqual(t, h, 0.0)
	assert.LessOrEqual(t, h, 1.0)
}

func TestShiftAndSeriesAccessors(t *testing.T) {
	s := Shift([]float64{1, 2, 3}, 1)
	assert.True(t, math.IsNaN(s[0]))
	assert.Equal(t, 2.0, s[2])
	assert.Equal(t, 3.0, Series{1, 2, 3}.At(-1))
	assert.True(t, math.IsNaN(Series{}.Last()))
	assert.Equal(t, 4.0, Or(math.Inf(1), 4))
	assert.Equal(t, 0.0, Or(0, 4))
}
