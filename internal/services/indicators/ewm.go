package indicators

import "math"

// ewm is exponentially weighted smoothing with span s (alpha = 2/(s+1)).
// With adjust the weights are normalised over the whole history; without
// it the classic recursive form is used. Undefined inputs keep the previous
// value while still decaying its weight.
func ewm(values []float64, span int, adjust bool) Series {
	out := undefined(len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2 / (float64(span) + 1)
	factor := 1 - alpha
	newWt := alpha
	if adjust {
		newWt = 1
	}

	weighted := values[0]
	oldWt := 1.0
	out[0] = weighted
	for i := 1; i < len(values); i++ {
		cur := values[i]
		obs := !math.IsNaN(cur)
		if !math.IsNaN(weighted) {
			oldWt *= factor
			if obs {
				if weighted != cur {
					weighted = (oldWt*weighted + newWt*cur) / (oldWt + newWt)
				}
				if adjust {
					oldWt += newWt
				} else {
					oldWt = 1
				}
			}
		} else if obs {
			weighted = cur
		}
		out[i] = weighted
	}
	return out
}

// EMA is the recursive exponential moving average seeded by the first value.
func EMA(values []float64, window int) Series {
	return ewm(values, window, false)
}

// AdjustedEMA is the history-normalised exponential average used for
// directional movement smoothing.
func AdjustedEMA(values []float64, span int) Series {
	return ewm(values, span, true)
}
