package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
)

type seriesKey struct {
	symbol string
	tf     domrepo.Timeframe
}

// MemoryBarStore keeps bars in process. It backs the memory store backend
// and tests.
type MemoryBarStore struct {
	mu   sync.RWMutex
	bars map[seriesKey]models.PriceSeries
}

var _ domrepo.BarRepository = (*MemoryBarStore)(nil)

func NewMemoryBarStore() *MemoryBarStore {
	return &MemoryBarStore{bars: make(map[seriesKey]models.PriceSeries)}
}

// Put merges bars into the stored series, keeping it sorted and unique by
// timestamp.
func (s *MemoryBarStore) Put(symbol string, tf domrepo.Timeframe, bars models.PriceSeries) {
	k := seriesKey{symbol: strings.ToUpper(symbol), tf: tf}
	s.mu.Lock()
	defer s.mu.Unlock()

	byTS := make(map[int64]models.PriceBar, len(s.bars[k])+len(bars))
	for _, b := range s.bars[k] {
		byTS[b.Timestamp.UnixNano()] = b
	}
	for _, b := range bars {
		byTS[b.Timestamp.UnixNano()] = b
	}
	merged := make(models.PriceSeries, 0, len(byTS))
	for _, b := range byTS {
		merged = append(merged, b)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Timestamp.Before(merged[j].Timestamp) })
	s.bars[k] = merged
}

func (s *MemoryBarStore) PutBars(_ context.Context, symbol string, tf domrepo.Timeframe, bars models.PriceSeries) error {
	s.Put(symbol, tf, bars)
	return nil
}

func (s *MemoryBarStore) GetBars(_ context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.PriceSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.bars[seriesKey{symbol: strings.ToUpper(symbol), tf: tf}]
	out := make(models.PriceSeries, 0)
	for _, b := range all {
		if b.Timestamp.Before(from) || b.Timestamp.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *MemoryBarStore) GetLatestNBars(_ context.Context, symbol string, n int, tf domrepo.Timeframe) (models.PriceSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.bars[seriesKey{symbol: strings.ToUpper(symbol), tf: tf}]
	if n > len(all) {
		n = len(all)
	}
	if n <= 0 {
		return models.PriceSeries{}, nil
	}
	return all[len(all)-n:].Clone(), nil
}

func (s *MemoryBarStore) Health(context.Context) error { return nil }
