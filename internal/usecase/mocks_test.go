package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) GetBars(ctx context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.PriceSeries, error) {
	args := m.Called(ctx, symbol, from, to, tf)
	s, _ := args.Get(0).(models.PriceSeries)
	return s, args.Error(1)
}

func (m *mockStore) GetLatestNBars(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (models.PriceSeries, error) {
	args := m.Called(ctx, symbol, n, tf)
	s, _ := args.Get(0).(models.PriceSeries)
	return s, args.Error(1)
}

func (m *mockStore) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockWriter struct{ mock.Mock }

func (m *mockWriter) PutBars(ctx context.Context, symbol string, tf domrepo.Timeframe, bars models.PriceSeries) error {
	return m.Called(ctx, symbol, tf, bars).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, ev *models.ReportEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockPublisher) Close() error { return m.Called().Error(0) }

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) (*models.AnalysisResult, bool, error) {
	args := m.Called(ctx, key)
	res, _ := args.Get(0).(*models.AnalysisResult)
	return res, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, res *models.AnalysisResult) error {
	return m.Called(ctx, key, res).Error(0)
}

// metricsSpy records calls without expectations.
type metricsSpy struct {
	analyses   map[string]models.SignalLabel
	strategies map[string]models.SignalLabel
	errors     []string
	lastPrice  map[string]float64
	latency    map[string]int
}

func newMetricsSpy() *metricsSpy {
	return &metricsSpy{
		analyses:   map[string]models.SignalLabel{},
		strategies: map[string]models.SignalLabel{},
		lastPrice:  map[string]float64{},
		latency:    map[string]int{},
	}
}

func (s *metricsSpy) RecordAnalysis(symbol string, signal models.SignalLabel) {
	s.analyses[symbol] = signal
}

func (s *metricsSpy) RecordStrategySignal(strategy string, signal models.SignalLabel) {
	s.strategies[strategy] = signal
}

func (s *metricsSpy) RecordError(kind string) { s.errors = append(s.errors, kind) }

func (s *metricsSpy) RecordLastPrice(symbol string, price float64) { s.lastPrice[symbol] = price }

func (s *metricsSpy) RecordLatency(op string, _ float64) { s.latency[op]++ }
