package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	domsvc "TechAnalyst/internal/domain/service"
	"TechAnalyst/internal/service/cache"
	"TechAnalyst/internal/services/analytics"
	"TechAnalyst/internal/services/features"
	applogger "TechAnalyst/pkg/logger"
	"TechAnalyst/pkg/util"
)

const (
	MaxAnalyzeBars = 5000
	volWindow      = 60
)

type AnalyzeSeriesParams struct {
	Symbol string
	Bars   models.PriceSeries
}

type AnalyzeSymbolParams struct {
	Symbol    string
	N         int
	Timeframe domrepo.Timeframe
}

// AnalysisUseCase loads or accepts a series, runs the engine and fans the
// result out to the cache, the publisher and metrics.
type AnalysisUseCase struct {
	engine    domsvc.Analyzer
	store     domrepo.BarStore
	cache     domrepo.ReportCache
	publisher domrepo.ReportPublisher
	metrics   domrepo.Metrics
	l         *applogger.Logger
	now       func() time.Time
	newID     func() string
}

type AnalysisOption func(*AnalysisUseCase)

// WithReportCache enables result caching.
func WithReportCache(c domrepo.ReportCache) AnalysisOption {
	return func(uc *AnalysisUseCase) { uc.cache = c }
}

func WithClock(now func() time.Time) AnalysisOption {
	return func(uc *AnalysisUseCase) { uc.now = now }
}

func WithRunIDs(newID func() string) AnalysisOption {
	return func(uc *AnalysisUseCase) { uc.newID = newID }
}

func NewAnalysisUseCase(
	engine domsvc.Analyzer,
	store domrepo.BarStore,
	publisher domrepo.ReportPublisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	opts ...AnalysisOption,
) *AnalysisUseCase {
	uc := &AnalysisUseCase{
		engine:    engine,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		l:         l,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.l == nil {
		uc.l = applogger.NewNop()
	}
	return uc
}

// AnalyzeSeries analyses bars supplied by the caller.
func (uc *AnalysisUseCase) AnalyzeSeries(ctx context.Context, p AnalyzeSeriesParams) (*models.AnalysisResult, error) {
	if len(p.Bars) == 0 {
		return nil, analytics.ErrEmptySeries
	}
	symbol := util.NormalizeSymbol(p.Symbol)
	if symbol == "" {
		symbol = "UNKNOWN"
	}
	key := cache.ReportKey(symbol, "series-"+digest(p.Bars), len(p.Bars), p.Bars.Last().Timestamp)
	return uc.analyze(ctx, symbol, "", key, p.Bars)
}

// AnalyzeSymbol analyses the latest N bars of a symbol from the store.
func (uc *AnalysisUseCase) AnalyzeSymbol(ctx context.Context, p AnalyzeSymbolParams) (*models.AnalysisResult, error) {
	symbol := util.NormalizeSymbol(p.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol required", ErrInvalidParams)
	}
	if p.N <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", ErrInvalidParams)
	}
	if p.N > MaxAnalyzeBars {
		p.N = MaxAnalyzeBars
	}
	tf := p.Timeframe
	if tf == "" {
		tf = domrepo.DefaultTimeframe()
	}
	if !domrepo.IsValidTimeframe(tf) {
		return nil, fmt.Errorf("%w: unsupported timeframe %q", ErrInvalidParams, tf)
	}

	start := uc.now()
	bars, err := uc.store.GetLatestNBars(ctx, symbol, p.N, tf)
	if err != nil {
		uc.metrics.RecordError("store")
		return nil, fmt.Errorf("load bars %s/%s: %w", symbol, tf, err)
	}
	uc.metrics.RecordLatency("load_bars", uc.now().Sub(start).Seconds())
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", symbol, tf, domrepo.ErrNoBars)
	}

	// Stored bars can be corrected in place, so the key pins their content.
	key := cache.ReportKey(symbol, string(tf)+"-"+digest(bars), p.N, bars.Last().Timestamp)
	return uc.analyze(ctx, symbol, tf, key, bars)
}

func (uc *AnalysisUseCase) analyze(ctx context.Context, symbol string, tf domrepo.Timeframe, key string, bars models.PriceSeries) (*models.AnalysisResult, error) {
	if res, ok := uc.cached(ctx, key); ok {
		return res, nil
	}

	start := uc.now()
	report, err := uc.engine.Analyze(bars)
	if err != nil {
		kind := "engine"
		if errors.Is(err, analytics.ErrInvalidSeries) || errors.Is(err, analytics.ErrEmptySeries) {
			kind = "invalid_series"
		}
		uc.metrics.RecordError(kind)
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	elapsed := uc.now().Sub(start)

	last := bars.Last()
	res := &models.AnalysisResult{
		RunID:       uc.newID(),
		Symbol:      symbol,
		Timeframe:   string(tf),
		Bars:        len(bars),
		From:        bars[0].Timestamp,
		To:          last.Timestamp,
		LastClose:   last.Close,
		RealizedVol: realizedVol(bars, tf),
		GeneratedAt: uc.now().UTC(),
		Report:      analytics.Report(report),
	}

	uc.record(symbol, report, last.Close, elapsed)
	uc.l.Info("analysis complete",
		applogger.String("run_id", res.RunID),
		applogger.String("symbol", symbol),
		applogger.String("tf", string(tf)),
		applogger.Int("bars", len(bars)),
		applogger.String("signal", report.Ensemble.Composite.Signal.String()),
		applogger.Float64("score", report.Ensemble.Composite.Score),
		applogger.Duration("duration_ms", elapsed),
	)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, res); err != nil {
			uc.l.Warn("analysis cache_set_error", applogger.String("key", key), applogger.Error(err))
		}
	}
	uc.publish(ctx, res, report.Ensemble.Composite)
	return res, nil
}

func (uc *AnalysisUseCase) cached(ctx context.Context, key string) (*models.AnalysisResult, bool) {
	if uc.cache == nil {
		return nil, false
	}
	res, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.l.Warn("analysis cache_get_error", applogger.String("key", key), applogger.Error(err))
		return nil, false
	}
	if !ok {
		uc.l.Debug("analysis cache_miss", applogger.String("key", key))
		return nil, false
	}
	uc.l.Debug("analysis cache_hit", applogger.String("key", key))
	res.Cached = true
	return res, true
}

func (uc *AnalysisUseCase) record(symbol string, report *models.AnalysisReport, lastClose float64, elapsed time.Duration) {
	uc.metrics.RecordAnalysis(symbol, report.Ensemble.Composite.Signal)
	for _, s := range report.Ensemble.Strategies {
		uc.metrics.RecordStrategySignal(s.Name, s.Signal)
	}
	uc.metrics.RecordLastPrice(symbol, lastClose)
	uc.metrics.RecordLatency("analyze", elapsed.Seconds())
}

// publish never fails the analysis. Errors are logged and counted.
func (uc *AnalysisUseCase) publish(ctx context.Context, res *models.AnalysisResult, composite models.CompositeSignal) {
	if uc.publisher == nil {
		return
	}
	ev := &models.ReportEvent{
		RunID:       res.RunID,
		Symbol:      res.Symbol,
		Timeframe:   res.Timeframe,
		Bars:        res.Bars,
		Signal:      composite.Signal,
		Score:       composite.Score,
		GeneratedAt: res.GeneratedAt,
		Report:      res.Report,
	}
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.metrics.RecordError("publish")
		uc.l.Warn("analysis publish_error",
			applogger.String("run_id", res.RunID),
			applogger.String("symbol", res.Symbol),
			applogger.Error(err),
		)
	}
}

func realizedVol(bars models.PriceSeries, tf domrepo.Timeframe) float64 {
	rets := features.ComputeLogReturns(bars)
	w := volWindow
	if len(rets) < w {
		w = len(rets)
	}
	v := features.RealizedVolatility(rets, w, features.BarsPerYearForTF(string(tf)))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// digest fingerprints a series so equal inputs share a cache entry.
func digest(bars models.PriceSeries) string {
	h := sha256.New()
	var buf [8]byte
	for _, b := range bars {
		binary.LittleEndian.PutUint64(buf[:], uint64(b.Timestamp.UnixNano()))
		h.Write(buf[:])
		for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(b.Volume))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
