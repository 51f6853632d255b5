package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	applogger "TechAnalyst/pkg/logger"
	pkgpg "TechAnalyst/pkg/postgres"
)

// PGSchema creates the bar table shared by every timeframe.
var PGSchema = []string{
	`CREATE TABLE IF NOT EXISTS price_bars (
    symbol    TEXT             NOT NULL,
    timeframe TEXT             NOT NULL,
    ts        TIMESTAMPTZ      NOT NULL,
    open      DOUBLE PRECISION NOT NULL,
    high      DOUBLE PRECISION NOT NULL,
    low       DOUBLE PRECISION NOT NULL,
    close     DOUBLE PRECISION NOT NULL,
    volume    BIGINT           NOT NULL DEFAULT 0,
    PRIMARY KEY (symbol, timeframe, ts)
)`,
}

type barRow struct {
	Timestamp time.Time `db:"ts"`
	Open      float64   `db:"open"`
	High      float64   `db:"high"`
	Low       float64   `db:"low"`
	Close     float64   `db:"close"`
	Volume    int64     `db:"volume"`
}

func (r barRow) toBar() models.PriceBar {
	return models.PriceBar{
		Timestamp: r.Timestamp.UTC(),
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Close:     r.Close,
		Volume:    r.Volume,
	}
}

func toSeries(rows []barRow) models.PriceSeries {
	out := make(models.PriceSeries, len(rows))
	for i, r := range rows {
		out[i] = r.toBar()
	}
	return out
}

// PGBarStore implements BarRepository on PostgreSQL through sqlx.
type PGBarStore struct {
	db *sqlx.DB
	l  *applogger.Logger
}

var _ domrepo.BarRepository = (*PGBarStore)(nil)

func NewPGBarStore(pg *pkgpg.Client, l *applogger.Logger) *PGBarStore {
	if l == nil {
		l = applogger.NewNop()
	}
	return &PGBarStore{db: pg.DB(), l: l}
}

func (s *PGBarStore) GetBars(ctx context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) (models.PriceSeries, error) {
	const q = `
        SELECT ts, open, high, low, close, volume
        FROM price_bars
        WHERE symbol = $1 AND timeframe = $2 AND ts >= $3 AND ts <= $4
        ORDER BY ts ASC`
	var rows []barRow
	if err := s.db.SelectContext(ctx, &rows, q, symbol, string(tf), from, to); err != nil {
		s.l.Error("postgres get_bars error",
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("get bars: %w", err)
	}
	return toSeries(rows), nil
}

func (s *PGBarStore) GetLatestNBars(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (models.PriceSeries, error) {
	const q = `
        SELECT ts, open, high, low, close, volume
        FROM price_bars
        WHERE symbol = $1 AND timeframe = $2
        ORDER BY ts DESC
        LIMIT $3`
	var rows []barRow
	if err := s.db.SelectContext(ctx, &rows, q, symbol, string(tf), n); err != nil {
		s.l.Error("postgres latest_bars error",
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Int("limit", n),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	reverse(rows)
	return toSeries(rows), nil
}

// PutBars upserts bars in one transaction.
func (s *PGBarStore) PutBars(ctx context.Context, symbol string, tf domrepo.Timeframe, bars models.PriceSeries) error {
	const q = `
        INSERT INTO price_bars (symbol, timeframe, ts, open, high, low, close, volume)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (symbol, timeframe, ts) DO UPDATE
        SET open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
            close = EXCLUDED.close, volume = EXCLUDED.volume`

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put bars: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, b := range bars {
		if _, err := tx.ExecContext(ctx, q, symbol, string(tf), b.Timestamp.UTC(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			s.l.Error("postgres put_bars error",
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Error(err),
			)
			return fmt.Errorf("put bars: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put bars: commit: %w", err)
	}
	return nil
}

func (s *PGBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
