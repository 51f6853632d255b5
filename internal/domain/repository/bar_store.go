package repository

import (
	"context"
	"errors"
	"time"

	"TechAnalyst/internal/domain/models"
)

// Timeframe represents bar resolution buckets.
type Timeframe string

const (
	TF1h Timeframe = "1h"
	TF1d Timeframe = "1d"
)

// ErrNoBars is returned when a store holds no bars for the request.
var ErrNoBars = errors.New("no bars found")

// BarStore provides read-only access to price bars for analysis.
// Implementations return bars in ascending timestamp order.
type BarStore interface {
	GetBars(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) (models.PriceSeries, error)
	GetLatestNBars(ctx context.Context, symbol string, n int, tf Timeframe) (models.PriceSeries, error)
	Health(ctx context.Context) error
}

// BarWriter stores bars. Writing a bar whose timestamp already exists for the
// symbol and timeframe replaces it.
type BarWriter interface {
	PutBars(ctx context.Context, symbol string, tf Timeframe, bars models.PriceSeries) error
}

// BarRepository is a store that can be both read and written.
type BarRepository interface {
	BarStore
	BarWriter
}
