package analytics

import (
	"errors"
	"fmt"
	"math"

	"TechAnalyst/internal/domain/models"
)

var (
	ErrEmptySeries   = errors.New("price series is empty")
	ErrInvalidSeries = errors.New("invalid price series")
)

// ValidateSeries checks the input contract: ascending unique timestamps,
// finite positive prices inside the bar's range and non-negative volume.
func ValidateSeries(series models.PriceSeries) error {
	if len(series) == 0 {
		return ErrEmptySeries
	}
	for i, b := range series {
		if b.Timestamp.IsZero() {
			return fmt.Errorf("%w: bar %d has no timestamp", ErrInvalidSeries, i)
		}
		if i > 0 && !b.Timestamp.After(series[i-1].Timestamp) {
			return fmt.Errorf("%w: bar %d timestamp %s is not after %s",
				ErrInvalidSeries, i, b.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
				series[i-1].Timestamp.Format("2006-01-02T15:04:05Z07:00"))
		}
		for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
			if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
				return fmt.Errorf("%w: bar %d has non-positive or non-finite price", ErrInvalidSeries, i)
			}
		}
		if b.High < b.Low {
			return fmt.Errorf("%w: bar %d high %.6g below low %.6g", ErrInvalidSeries, i, b.High, b.Low)
		}
		if b.Open < b.Low || b.Open > b.High || b.Close < b.Low || b.Close > b.High {
			return fmt.Errorf("%w: bar %d open/close outside [low, high]", ErrInvalidSeries, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d has negative volume", ErrInvalidSeries, i)
		}
	}
	return nil
}
