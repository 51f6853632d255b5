package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	pkgch "TechAnalyst/pkg/clickhouse"
	applogger "TechAnalyst/pkg/logger"
)

// CHBarStore implements BarRepository backed by ClickHouse.
type CHBarStore struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

var _ domrepo.BarRepository = (*CHBarStore)(nil)

func NewCHBarStore(ch *pkgch.Client, l *applogger.Logger) *CHBarStore {
	if l == nil {
		l = applogger.NewNop()
	}
	return &CHBarStore{db: ch.DB(), database: ch.Database(), l: l}
}

// CHSchema returns the DDL for the bar tables in database.
func CHSchema(database string) []string {
	stmts := []string{fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database)}
	for _, tf := range []domrepo.Timeframe{domrepo.TF1h, domrepo.TF1d} {
		table, _ := chTableForTF(database, tf)
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    ts     DateTime('UTC'),
    symbol LowCardinality(String),
    open   Float64,
    high   Float64,
    low    Float64,
    close  Float64,
    volume Int64
) ENGINE = ReplacingMergeTree
ORDER BY (symbol, ts)`, table))
	}
	return stmts
}

func (s *CHBarStore) GetBars(ctx context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.PriceSeries, error) {
	start := time.Now()
	table, err := chTableForTF(s.database, tf)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT ts, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ? AND ts >= ? AND ts <= ?
        ORDER BY ts ASC
    `
	out, err := s.query(ctx, "get_bars", table, symbol, tf, fmt.Sprintf(qtpl, table), symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("get bars: %w", err)
	}
	s.l.Debug("clickhouse get_bars ok",
		applogger.String("table", table),
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

func (s *CHBarStore) GetLatestNBars(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (models.PriceSeries, error) {
	start := time.Now()
	table, err := chTableForTF(s.database, tf)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT ts, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ?
        ORDER BY ts DESC
        LIMIT ?
    `
	out, err := s.query(ctx, "latest_bars", table, symbol, tf, fmt.Sprintf(qtpl, table), symbol, n)
	if err != nil {
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	reverse(out)
	s.l.Debug("clickhouse latest_bars ok",
		applogger.String("table", table),
		applogger.String("symbol", symbol),
		applogger.Int("limit", n),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

func (s *CHBarStore) query(ctx context.Context, op, table, symbol string, tf domrepo.Timeframe, q string, args ...interface{}) (models.PriceSeries, error) {
	fail := func(stage string, err error) error {
		s.l.Error("clickhouse "+op+" "+stage+" error",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Error(err),
		)
		return err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fail("query", err)
	}
	defer rows.Close()

	out := make(models.PriceSeries, 0, 256)
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fail("scan", fmt.Errorf("scan bar: %w", err))
		}
		b.Timestamp = b.Timestamp.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("rows", fmt.Errorf("rows: %w", err))
	}
	return out, nil
}

// PutBars inserts bars in multi-row batches. ReplacingMergeTree collapses
// rows that share (symbol, ts).
func (s *CHBarStore) PutBars(ctx context.Context, symbol string, tf domrepo.Timeframe, bars models.PriceSeries) error {
	table, err := chTableForTF(s.database, tf)
	if err != nil {
		return err
	}
	for start := 0; start < len(bars); start += insertChunk {
		end := start + insertChunk
		if end > len(bars) {
			end = len(bars)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for _, b := range bars[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, b.Timestamp.UTC(), symbol, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, symbol, open, high, low, close, volume) VALUES %s", table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse put_bars error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.Int("rows", end-start),
				applogger.Error(err),
			)
			return fmt.Errorf("put bars: %w", err)
		}
	}
	return nil
}

func (s *CHBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
