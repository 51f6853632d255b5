// Package indicators holds pure technical-indicator functions. Every
// function returns a new series aligned with its input; positions a
// lookback window cannot fill yet are NaN.
package indicators

import "math"

// Series is one value per input bar. NaN marks an undefined position.
type Series []float64

// Defined reports whether v is a usable number.
func Defined(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Or returns v when it is defined and fallback otherwise.
func Or(v, fallback float64) float64 {
	if Defined(v) {
		return v
	}
	return fallback
}

// Last returns the most recent value, NaN for an empty series.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// At returns s[i] counting from the end when i is negative (-1 is the last
// value). Out of range positions are NaN.
func (s Series) At(i int) float64 {
	if i < 0 {
		i += len(s)
	}
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

func undefined(n int) Series {
	out := make(Series, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Shift moves values k positions forward in time (k<0 moves them back),
// padding with NaN.
func Shift(values []float64, k int) Series {
	out := undefined(len(values))
	for i := range values {
		j := i + k
		if j >= 0 && j < len(values) {
			out[j] = values[i]
		}
	}
	return out
}

// Diff returns values[i]-values[i-1]; the first position is NaN.
func Diff(values []float64) Series {
	out := undefined(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

// PctChange returns values[i]/values[i-1]-1; the first position is NaN.
func PctChange(values []float64) Series {
	out := undefined(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i]/values[i-1] - 1
	}
	return out
}

// Sub returns a-b element-wise.
func Sub(a, b []float64) Series {
	out := make(Series, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Div returns a/b element-wise.
func Div(a, b []float64) Series {
	out := make(Series, len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}
	return out
}

// MeanDefined averages the defined values of xs; ok is false when there
// are none.
func MeanDefined(xs []float64) (mean float64, ok bool) {
	n := 0
	sum := 0.0
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
