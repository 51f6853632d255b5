package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechAnalyst/internal/domain/models"
	domrepo "TechAnalyst/internal/domain/repository"
	pkgkafka "TechAnalyst/pkg/kafka"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dailyBars(n int, from float64) models.PriceSeries {
	out := make(models.PriceSeries, n)
	for i := range out {
		c := from + float64(i)
		out[i] = models.PriceBar{
			Timestamp: t0.AddDate(0, 0, i),
			Open:      c, High: c + 1, Low: c - 1, Close: c,
			Volume: int64(100 + i),
		}
	}
	return out
}

func TestMemoryBarStoreLatestN(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBarStore()
	s.Put("aapl", domrepo.TF1d, dailyBars(10, 100))

	got, err := s.GetLatestNBars(ctx, "AAPL", 3, domrepo.TF1d)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 107.0, got[0].Close)
	assert.Equal(t, 109.0, got[2].Close)

	got, err = s.GetLatestNBars(ctx, "AAPL", 50, domrepo.TF1d)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	got, err = s.GetLatestNBars(ctx, "AAPL", 5, domrepo.TF1h)
	require.NoError(t, err)
	assert.Empty(t, got, "timeframes are separate series")
}

func TestMemoryBarStoreRange(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBarStore()
	s.Put("MSFT", domrepo.TF1d, dailyBars(10, 50))

	got, err := s.GetBars(ctx, "MSFT", t0.AddDate(0, 0, 2), t0.AddDate(0, 0, 4), domrepo.TF1d)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Timestamp.Equal(t0.AddDate(0, 0, 2)))
}

func TestMemoryBarStoreMergesAndSorts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBarStore()
	bars := dailyBars(4, 10)
	require.NoError(t, s.PutBars(ctx, "X", domrepo.TF1d, models.PriceSeries{bars[3], bars[1]}))
	replacement := bars[1]
	replacement.Close = 10.5
	require.NoError(t, s.PutBars(ctx, "X", domrepo.TF1d, models.PriceSeries{bars[0], replacement, bars[2]}))

	got, err := s.GetLatestNBars(ctx, "X", 10, domrepo.TF1d)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Timestamp.Before(got[i].Timestamp))
	}
	assert.Equal(t, 10.5, got[1].Close)
}

func TestMemoryBarStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBarStore()
	s.Put("X", domrepo.TF1d, dailyBars(3, 10))
	got, _ := s.GetLatestNBars(ctx, "X", 3, domrepo.TF1d)
	got[0].Close = -1
	again, _ := s.GetLatestNBars(ctx, "X", 3, domrepo.TF1d)
	assert.Equal(t, 10.0, again[0].Close)
}

func TestCHTableForTF(t *testing.T) {
	table, err := chTableForTF("market", domrepo.TF1h)
	require.NoError(t, err)
	assert.Equal(t, "market.bars_1h", table)

	table, err = chTableForTF("market", domrepo.TF1d)
	require.NoError(t, err)
	assert.Equal(t, "market.bars_1d", table)

	_, err = chTableForTF("market", domrepo.Timeframe("5m"))
	assert.Error(t, err)
}

func TestCHSchema(t *testing.T) {
	stmts := CHSchema("market")
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS market", stmts[0])
	assert.Contains(t, stmts[1], "market.bars_1h")
	assert.Contains(t, stmts[2], "market.bars_1d")
	assert.Contains(t, stmts[2], "ReplacingMergeTree")
}

func TestReverse(t *testing.T) {
	xs := []int{1, 2, 3, 4}
	reverse(xs)
	assert.Equal(t, []int{4, 3, 2, 1}, xs)
	var empty []int
	reverse(empty)
	assert.Empty(t, empty)
}

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestKafkaReportPublisherKeysBySymbol(t *testing.T) {
	w := &captureWriter{}
	p := NewKafkaReportPublisher(pkgkafka.NewProducerWithWriter(w, "none"), "reports")

	ev := &models.ReportEvent{RunID: "r1", Symbol: "AAPL", Bars: 10, Signal: models.Bearish}
	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "reports", w.msgs[0].Topic)
	assert.Equal(t, []byte("AAPL"), w.msgs[0].Key)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "bearish", decoded["signal"])
	assert.Equal(t, "r1", decoded["run_id"])

	assert.Error(t, p.Publish(context.Background(), nil))
	assert.NoError(t, p.Close())
}

func TestNoopReportPublisher(t *testing.T) {
	var p domrepo.ReportPublisher = NoopReportPublisher{}
	assert.NoError(t, p.Publish(context.Background(), &models.ReportEvent{}))
	assert.NoError(t, p.Close())
}
