package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"TechAnalyst/internal/domain/models"
)

// ReportKey identifies a report by its input. The engine is deterministic, so
// the last bar's timestamp pins the series for a given symbol, timeframe and
// length.
func ReportKey(symbol, tf string, n int, lastBar time.Time) string {
	return fmt.Sprintf("analysis:%s:%s:%d:%d", strings.ToUpper(symbol), tf, n, lastBar.Unix())
}

// ReportCache stores analysis results as JSON on top of a BytesCache.
type ReportCache struct {
	store BytesCache
	ttl   time.Duration
}

func NewReportCache(store BytesCache, ttl time.Duration) *ReportCache {
	return &ReportCache{store: store, ttl: ttl}
}

func (c *ReportCache) Get(ctx context.Context, key string) (*models.AnalysisResult, bool, error) {
	b, ok, err := c.store.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var res models.AnalysisResult
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, false, fmt.Errorf("decode cached report %s: %w", key, err)
	}
	return &res, true, nil
}

func (c *ReportCache) Set(ctx context.Context, key string, res *models.AnalysisResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", key, err)
	}
	return c.store.SetBytes(ctx, key, b, c.ttl)
}
