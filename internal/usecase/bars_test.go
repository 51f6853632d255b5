package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	"TechAnalyst/internal/services/analytics"
)

func TestGetBarsValidation(t *testing.T) {
	uc := NewBarsUseCase(&mockStore{}, nil)
	ctx := context.Background()

	_, err := uc.GetBars(ctx, GetBarsParams{From: t0, To: t0})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = uc.GetBars(ctx, GetBarsParams{Symbol: "X", From: t0.Add(time.Hour), To: t0})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestGetBarsAlignsAndLimits(t *testing.T) {
	store := &mockStore{}
	uc := NewBarsUseCase(store, nil)

	from := t0.Add(5 * time.Hour)
	to := t0.AddDate(0, 0, 10).Add(3 * time.Hour)
	store.On("GetBars", mock.Anything, "AAPL", t0, t0.AddDate(0, 0, 10), domrepo.TF1d).Return(uptrend(11), nil)

	res, err := uc.GetBars(context.Background(), GetBarsParams{Symbol: "aapl", From: from, To: to, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, "1d", res.Timeframe)
	assert.Equal(t, 4, res.Count)
	require.Len(t, res.Bars, 4)
	assert.True(t, res.Bars[0].Timestamp.Equal(t0))
	store.AssertExpectations(t)
}

func TestGetBarsStoreError(t *testing.T) {
	store := &mockStore{}
	boom := errors.New("timeout")
	store.On("GetBars", mock.Anything, "X", mock.Anything, mock.Anything, domrepo.TF1h).Return(nil, boom)

	_, err := NewBarsUseCase(store, nil).GetBars(context.Background(), GetBarsParams{Symbol: "X", From: t0, To: t0, Timeframe: domrepo.TF1h})
	assert.ErrorIs(t, err, boom)
}

func TestPutBars(t *testing.T) {
	w := &mockWriter{}
	uc := NewBarsUseCase(&mockStore{}, w)
	bars := uptrend(3)
	w.On("PutBars", mock.Anything, "AAPL", domrepo.TF1d, bars).Return(nil)

	n, err := uc.PutBars(context.Background(), PutBarsParams{Symbol: "aapl", Bars: bars})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	w.AssertExpectations(t)
}

func TestPutBarsRejects(t *testing.T) {
	ctx := context.Background()

	_, err := NewBarsUseCase(&mockStore{}, nil).PutBars(ctx, PutBarsParams{Symbol: "X", Bars: uptrend(2)})
	assert.ErrorIs(t, err, ErrInvalidParams, "read-only store")

	w := &mockWriter{}
	uc := NewBarsUseCase(&mockStore{}, w)
	_, err = uc.PutBars(ctx, PutBarsParams{Bars: uptrend(2)})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = uc.PutBars(ctx, PutBarsParams{Symbol: "X", Timeframe: "1w", Bars: uptrend(2)})
	assert.ErrorIs(t, err, ErrInvalidParams)

	bad := uptrend(2)
	bad[1].High = bad[1].Low - 1
	_, err = uc.PutBars(ctx, PutBarsParams{Symbol: "X", Bars: bad})
	assert.ErrorIs(t, err, analytics.ErrInvalidSeries)

	_, err = uc.PutBars(ctx, PutBarsParams{Symbol: "X", Bars: models.PriceSeries{}})
	assert.ErrorIs(t, err, analytics.ErrEmptySeries)
	w.AssertNotCalled(t, "PutBars", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStrategiesList(t *testing.T) {
	engine, err := analytics.NewEngine()
	require.NoError(t, err)
	cat := NewStrategiesUseCase(engine).List()
	require.Len(t, cat.Strategies, 5)
	assert.Equal(t, "trend_following", cat.Strategies[0].Name)
	assert.Equal(t, "statistical_arbitrage", cat.Strategies[4].Name)
	assert.Len(t, cat.BasicIndicators, 4)
}
