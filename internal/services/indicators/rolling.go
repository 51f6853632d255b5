package indicators

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// rolling applies fn to the defined values of each trailing window. A
// position is undefined until the window holds at least minPeriods defined
// values. minPeriods <= 0 means a full window.
func rolling(values []float64, window, minPeriods int, fn func(win []float64) float64) Series {
	out := undefined(len(values))
	if window <= 0 {
		return out
	}
	if minPeriods <= 0 || minPeriods > window {
		minPeriods = window
	}
	buf := make([]float64, 0, window)
	for i := range values {
		buf = buf[:0]
		for j := max(0, i-window+1); j <= i; j++ {
			if !math.IsNaN(values[j]) {
				buf = append(buf, values[j])
			}
		}
		if len(buf) >= minPeriods {
			out[i] = fn(buf)
		}
	}
	return out
}

// RollingMean is the trailing arithmetic mean.
func RollingMean(values []float64, window, minPeriods int) Series {
	return rolling(values, window, minPeriods, mean)
}

// RollingSum is the trailing sum.
func RollingSum(values []float64, window, minPeriods int) Series {
	return rolling(values, window, minPeriods, func(w []float64) float64 {
		s := 0.0
		for _, v := range w {
			s += v
		}
		return s
	})
}

// RollingStd is the trailing sample standard deviation (ddof 1). It needs
// at least two values.
func RollingStd(values []float64, window, minPeriods int) Series {
	return rolling(values, window, minPeriods, func(w []float64) float64 {
		if len(w) < 2 {
			return math.NaN()
		}
		m := mean(w)
		ss := 0.0
		for _, v := range w {
			ss += (v - m) * (v - m)
		}
		return math.Sqrt(ss / float64(len(w)-1))
	})
}

// RollingSkew is the trailing bias-corrected sample skewness. It needs at
// least three values and a non-degenerate variance.
func RollingSkew(values []float64, window, minPeriods int) Series {
	return rolling(values, window, minPeriods, func(w []float64) float64 {
		n := float64(len(w))
		if n < 3 {
			return math.NaN()
		}
		m2, m3, _ := centralMoments(w)
		if m2 <= 1e-14 {
			return math.NaN()
		}
		return math.Sqrt(n*(n-1)) * m3 / ((n - 2) * math.Pow(m2, 1.5))
	})
}

// RollingKurt is the trailing bias-corrected excess kurtosis. It needs at
// least four values and a non-degenerate variance.
func RollingKurt(values []float64, window, minPeriods int) Series {
	return rolling(values, window, minPeriods, func(w []float64) float64 {
		n := float64(len(w))
		if n < 4 {
			return math.NaN()
		}
		m2, _, m4 := centralMoments(w)
		if m2 <= 1e-14 {
			return math.NaN()
		}
		k := (n*n-1)*m4/(m2*m2) - 3*(n-1)*(n-1)
		return k / ((n - 2) * (n - 3))
	})
}

// SMA is the full-window simple moving average. values must be fully
// defined.
func SMA(values []float64, window int) Series {
	if window <= 0 || len(values) < window {
		return undefined(len(values))
	}
	out := Series(talib.Sma(values, window))
	for i := 0; i < window-1; i++ {
		out[i] = math.NaN()
	}
	return out
}

// RollingMax is the full-window maximum. values must be fully defined.
func RollingMax(values []float64, window int) Series {
	return extremum(values, window, talib.Max)
}

// RollingMin is the full-window minimum. values must be fully defined.
func RollingMin(values []float64, window int) Series {
	return extremum(values, window, talib.Min)
}

func extremum(values []float64, window int, fn func([]float64, int) []float64) Series {
	if window <= 0 || len(values) < window {
		return undefined(len(values))
	}
	if window == 1 {
		out := make(Series, len(values))
		copy(out, values)
		return out
	}
	out := Series(fn(values, window))
	for i := 0; i < window-1; i++ {
		out[i] = math.NaN()
	}
	return out
}

func mean(w []float64) float64 {
	s := 0.0
	for _, v := range w {
		s += v
	}
	return s / float64(len(w))
}

// centralMoments returns the population central moments of order 2, 3 and 4.
func centralMoments(w []float64) (m2, m3, m4 float64) {
	m := mean(w)
	for _, v := range w {
		d := v - m
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	n := float64(len(w))
	return m2 / n, m3 / n, m4 / n
}
