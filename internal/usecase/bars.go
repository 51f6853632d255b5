package usecase

import (
	"context"
	"fmt"
	"time"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	"TechAnalyst/internal/services/analytics"
	"TechAnalyst/internal/services/features"
	"TechAnalyst/pkg/util"
)

const (
	DefaultBarsLimit = 1000
	MaxBarsLimit     = 50000
)

// BarsUseCase serves raw bars and accepts new ones.
type BarsUseCase struct {
	store  domrepo.BarStore
	writer domrepo.BarWriter
}

// NewBarsUseCase takes the writer separately. A nil writer makes the store
// read-only.
func NewBarsUseCase(store domrepo.BarStore, writer domrepo.BarWriter) *BarsUseCase {
	return &BarsUseCase{store: store, writer: writer}
}

type GetBarsParams struct {
	Symbol    string
	From      time.Time
	To        time.Time
	Timeframe domrepo.Timeframe
	Limit     int
}

type GetBarsResult struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	From      time.Time        `json:"from"`
	To        time.Time        `json:"to"`
	Count     int              `json:"count"`
	Bars      []models.BarView `json:"bars"`
}

func (uc *BarsUseCase) GetBars(ctx context.Context, p GetBarsParams) (*GetBarsResult, error) {
	p.Symbol = util.NormalizeSymbol(p.Symbol)
	if p.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol required", ErrInvalidParams)
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("%w: from must be <= to", ErrInvalidParams)
	}
	if p.Limit <= 0 {
		p.Limit = DefaultBarsLimit
	}
	if p.Limit > MaxBarsLimit {
		p.Limit = MaxBarsLimit
	}
	if p.Timeframe == "" {
		p.Timeframe = domrepo.DefaultTimeframe()
	}
	from, to := features.AlignFromTo(p.From, p.To, string(p.Timeframe))

	bars, err := uc.store.GetBars(ctx, p.Symbol, from, to, p.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("get bars: %w", err)
	}
	if len(bars) > p.Limit {
		bars = bars[:p.Limit]
	}

	views := make([]models.BarView, len(bars))
	for i, b := range bars {
		views[i] = models.NewBarView(b)
	}
	return &GetBarsResult{
		Symbol:    p.Symbol,
		Timeframe: string(p.Timeframe),
		From:      from,
		To:        to,
		Count:     len(views),
		Bars:      views,
	}, nil
}

type PutBarsParams struct {
	Symbol    string
	Timeframe domrepo.Timeframe
	Bars      models.PriceSeries
}

// PutBars stores bars after checking them against the engine's input
// contract, so anything stored can later be analysed.
func (uc *BarsUseCase) PutBars(ctx context.Context, p PutBarsParams) (int, error) {
	if uc.writer == nil {
		return 0, fmt.Errorf("%w: bar store is read-only", ErrInvalidParams)
	}
	symbol := util.NormalizeSymbol(p.Symbol)
	if symbol == "" {
		return 0, fmt.Errorf("%w: symbol required", ErrInvalidParams)
	}
	tf := p.Timeframe
	if tf == "" {
		tf = domrepo.DefaultTimeframe()
	}
	if !domrepo.IsValidTimeframe(tf) {
		return 0, fmt.Errorf("%w: unsupported timeframe %q", ErrInvalidParams, tf)
	}
	if err := analytics.ValidateSeries(p.Bars); err != nil {
		return 0, err
	}
	if err := uc.writer.PutBars(ctx, symbol, tf, p.Bars); err != nil {
		return 0, fmt.Errorf("put bars: %w", err)
	}
	return len(p.Bars), nil
}
