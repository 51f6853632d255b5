package analytics

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechAnalyst/internal/domain/models"
	"TechAnalyst/internal/services/strategies"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func seriesFrom(closes []float64) models.PriceSeries {
	out := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		out[i] = models.PriceBar{
			Timestamp: t0.Add(time.Duration(i) * 24 * time.Hour),
			Open:      c,
			High:      c * 1.002,
			Low:       c * 0.998,
			Close:     c,
			Volume:    1000,
		}
	}
	return out
}

func uptrend(n int) models.PriceSeries {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 0.1*float64(i) + 0.05*math.Sin(float64(i))
	}
	out := seriesFrom(closes)
	for i := range out {
		out[i].High = out[i].Close + 0.2
		out[i].Low = out[i].Close - 0.2
	}
	return out
}

func randomWalk(seed int64, n int) models.PriceSeries {
	rng := rand.New(rand.NewSource(seed))
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		closes[i] = closes[i-1] * (1 + rng.NormFloat64()*0.02)
	}
	return seriesFrom(closes)
}

func crash() models.PriceSeries {
	closes := make([]float64, 0, 60)
	for i := 0; i < 55; i++ {
		closes = append(closes, 100+0.5*math.Sin(float64(i)))
	}
	closes = append(closes, 98, 96, 94, 92, 90)
	return seriesFrom(closes)
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategies.Weights.TrendFollowing = 0.5
	_, err := NewEngine(WithConfig(cfg))
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Voter.MACDFast = 30
	_, err = NewEngine(WithConfig(cfg))
	assert.Error(t, err)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultConfig().Strategies.Weights
	assert.Equal(t, 1.0, w.TrendFollowing+w.MeanReversion+w.Momentum+w.Volatility+w.StatisticalArbitrage)
}

func TestAnalyzeUptrend(t *testing.T) {
	report, err := newEngine(t).Analyze(uptrend(300))
	require.NoError(t, err)
	require.Len(t, report.Ensemble.Strategies, 5)

	byName := map[string]models.NamedSignal{}
	for _, s := range report.Ensemble.Strategies {
		byName[s.Name] = s
	}
	trend := byName[strategies.NameTrendFollowing]
	assert.Equal(t, models.Bullish, trend.Signal)
	assert.Greater(t, trend.Confidence, 0.3)
	assert.NotEqual(t, models.Bullish, byName[strategies.NameMeanReversion].Signal)

	// RSI over a gain-only window is 100.
	assert.Equal(t, models.Bearish, report.BasicVote.Reasoning[IndicatorRSI].Signal)
	assert.Equal(t, "RSI is 100.00 (overbought)", report.BasicVote.Reasoning[IndicatorRSI].Details)
	assert.Equal(t, models.Bullish, report.BasicVote.Reasoning[IndicatorOBV].Signal)
}

func TestAnalyzeCrashBoostsBullishVote(t *testing.T) {
	report, err := newEngine(t).Analyze(crash())
	require.NoError(t, err)

	vote := report.BasicVote
	assert.Equal(t, models.Neutral, vote.Reasoning[IndicatorMACD].Signal)
	assert.Equal(t, "MACD Line crossed neither above nor below Signal Line", vote.Reasoning[IndicatorMACD].Details)
	assert.Equal(t, models.Bullish, vote.Reasoning[IndicatorRSI].Signal)
	assert.Equal(t, models.Bullish, vote.Reasoning[IndicatorBollinger].Signal)
	assert.Equal(t, "Price is below lower band", vote.Reasoning[IndicatorBollinger].Details)
	assert.Equal(t, models.Bearish, vote.Reasoning[IndicatorOBV].Signal)
	assert.Equal(t, "OBV slope is -1000.00 (bearish)", vote.Reasoning[IndicatorOBV].Details)

	assert.Equal(t, models.Bullish, vote.Signal)
	assert.InDelta(t, 0.95, vote.Confidence, 1e-12)
}

func TestConfidencesBounded(t *testing.T) {
	cases := map[string]models.PriceSeries{
		"one":     seriesFrom([]float64{100}),
		"two":     seriesFrom([]float64{100, 101}),
		"five":    seriesFrom([]float64{100, 97, 95, 93, 90}),
		"fifteen": randomWalk(3, 15),
		"flat":    seriesFrom(make([]float64, 80)),
		"uptrend": uptrend(300),
		"crash":   crash(),
	}
	for i := range cases["flat"] {
		cases["flat"][i].Open, cases["flat"][i].High, cases["flat"][i].Low, cases["flat"][i].Close = 50, 50, 50, 50
	}
	for seed := int64(1); seed <= 5; seed++ {
		cases["walk"+string(rune('0'+seed))] = randomWalk(seed, 250)
	}

	e := newEngine(t)
	for name, series := range cases {
		report, err := e.Analyze(series)
		require.NoError(t, err, name)

		c := report.Ensemble.Composite
		assert.GreaterOrEqual(t, c.Confidence, 0.0, name)
		assert.LessOrEqual(t, c.Confidence, 1.0, name)
		assert.GreaterOrEqual(t, c.Score, -1.0, name)
		assert.LessOrEqual(t, c.Score, 1.0, name)
		assert.GreaterOrEqual(t, report.BasicVote.Confidence, 0.0, name)
		assert.LessOrEqual(t, report.BasicVote.Confidence, 1.0, name)
		for _, s := range report.Ensemble.Strategies {
			assert.GreaterOrEqual(t, s.Confidence, 0.0, "%s/%s", name, s.Name)
			assert.LessOrEqual(t, s.Confidence, 1.0, "%s/%s", name, s.Name)
		}
		assert.Len(t, report.BasicVote.Reasoning, 4, name)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	e := newEngine(t)
	series := randomWalk(42, 200)

	first, err := e.Analyze(series)
	require.NoError(t, err)
	second, err := e.Analyze(series)
	require.NoError(t, err)

	a, err := json.Marshal(Report(first))
	require.NoError(t, err)
	b, err := json.Marshal(Report(second))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	series := randomWalk(9, 120)
	before := series.Clone()
	_, err := newEngine(t).Analyze(series)
	require.NoError(t, err)
	assert.Equal(t, before, series)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	e := newEngine(t)

	_, err := e.Analyze(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	bad := map[string]func(s models.PriceSeries){
		"zero timestamp":   func(s models.PriceSeries) { s[0].Timestamp = time.Time{} },
		"duplicate time":   func(s models.PriceSeries) { s[2].Timestamp = s[1].Timestamp },
		"negative price":   func(s models.PriceSeries) { s[1].Low = -1 },
		"nan close":        func(s models.PriceSeries) { s[1].Close = math.NaN() },
		"high below low":   func(s models.PriceSeries) { s[1].High, s[1].Low = 90, 110 },
		"close above high": func(s models.PriceSeries) { s[1].Close = s[1].High + 1 },
		"negative volume":  func(s models.PriceSeries) { s[1].Volume = -5 },
	}
	for name, mutate := range bad {
		series := seriesFrom([]float64{100, 101, 102})
		mutate(series)
		_, err := e.Analyze(series)
		assert.ErrorIs(t, err, ErrInvalidSeries, name)
	}
}

func TestDecideTieIsNeutral(t *testing.T) {
	label, conf := decide([]models.SignalLabel{models.Bullish, models.Bullish, models.Bearish, models.Bearish}, 0)
	assert.Equal(t, models.Neutral, label)
	assert.Equal(t, 0.5, conf)
}

func TestDecideBoost(t *testing.T) {
	label, conf := decide([]models.SignalLabel{models.Bullish, models.Bullish, models.Bearish, models.Neutral, models.Bullish}, 0.2)
	assert.Equal(t, models.Bullish, label)
	assert.InDelta(t, 0.95, conf, 1e-12)

	// The booster vote can break a tie but its boost only lifts bullish outcomes.
	label, conf = decide([]models.SignalLabel{models.Bearish, models.Bearish, models.Bearish, models.Neutral, models.Bullish}, 0.2)
	assert.Equal(t, models.Bearish, label)
	assert.Equal(t, 0.75, conf)

	label, conf = decide([]models.SignalLabel{models.Bullish, models.Bullish, models.Bullish, models.Bullish, models.Bullish}, 0.2)
	assert.Equal(t, models.Bullish, label)
	assert.Equal(t, 1.0, conf)
}

func TestPriceDrop(t *testing.T) {
	assert.Equal(t, 0.0, priceDrop([]float64{100, 90}, 5))
	assert.InDelta(t, -0.1, priceDrop([]float64{1, 100, 99, 98, 97, 90}, 5), 1e-12)
}

func TestCombineAllNeutral(t *testing.T) {
	signals := make([]models.NamedSignal, 0, 5)
	for _, w := range strategies.Ensemble(strategies.DefaultConfig()) {
		signals = append(signals, models.NamedSignal{
			Name:           w.Evaluator.Name(),
			Weight:         w.Weight,
			StrategySignal: models.StrategySignal{Signal: models.Neutral, Confidence: 0.5},
		})
	}
	c := Combine(signals)
	assert.Equal(t, 0.0, c.Score)
	assert.Equal(t, models.Neutral, c.Signal)
	assert.Equal(t, 0.0, c.Confidence)
}

func TestCombineWeightedScore(t *testing.T) {
	c := Combine([]models.NamedSignal{
		{Name: "a", Weight: 0.3, StrategySignal: models.StrategySignal{Signal: models.Bullish, Confidence: 1}},
		{Name: "b", Weight: 0.25, StrategySignal: models.StrategySignal{Signal: models.Bearish, Confidence: 0.4}},
		{Name: "c", Weight: 0.45, StrategySignal: models.StrategySignal{Signal: models.Neutral, Confidence: 0.5}},
	})
	// (0.3 - 0.1) / (0.3 + 0.1 + 0.225)
	assert.InDelta(t, 0.32, c.Score, 1e-12)
	assert.Equal(t, models.Bullish, c.Signal)
	assert.InDelta(t, 0.32, c.Confidence, 1e-12)

	zero := Combine([]models.NamedSignal{{Name: "a", Weight: 0.3, StrategySignal: models.StrategySignal{Signal: models.Bearish}}})
	assert.Equal(t, 0.0, zero.Score)
	assert.Equal(t, models.Neutral, zero.Signal)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "73%", Percent(0.73))
	assert.Equal(t, "12%", Percent(0.125))
	assert.Equal(t, "14%", Percent(0.135))
	assert.Equal(t, "57%", Percent(0.575))
	assert.Equal(t, "28%", Percent(0.285))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "100%", Percent(1))
}

func TestReportShape(t *testing.T) {
	report, err := newEngine(t).Analyze(uptrend(120))
	require.NoError(t, err)

	raw, err := json.Marshal(Report(report))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "signal")
	assert.Contains(t, decoded, "confidence")

	strategySignals, ok := decoded["strategy_signals"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, strategySignals, 5)
	trend := strategySignals[strategies.NameTrendFollowing].(map[string]any)
	assert.Equal(t, "bullish", trend["signal"])
	assert.Regexp(t, `^\d+%$`, trend["confidence"])
	assert.Contains(t, trend["metrics"], "adx")

	vote := decoded["basic_vote"].(map[string]any)
	assert.Len(t, vote["reasoning"], 4)
}

func TestCatalog(t *testing.T) {
	cat := newEngine(t).Catalog()
	require.Len(t, cat.Strategies, 5)
	assert.Equal(t, strategies.NameTrendFollowing, cat.Strategies[0].Name)
	assert.Equal(t, 0.3, cat.Strategies[0].Weight)
	assert.Equal(t, []string{"adx", "trend_strength"}, cat.Strategies[0].Metrics)
	assert.Equal(t, []string{"MACD", "RSI", "Bollinger", "OBV"}, cat.BasicIndicators)
}
