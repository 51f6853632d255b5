package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TechAnalyst/internal/domain/models"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "|" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordAnalysis("AAPL", models.Bullish)
	r.RecordAnalysis("AAPL", models.Bullish)
	r.RecordStrategySignal("momentum", models.Bearish)
	r.RecordError("store")
	r.RecordLastPrice("AAPL", 187.5)
	r.RecordLatency("analyze", 0.02)

	// Gathered labels are ordered by label name.
	got := gather(t, reg)
	assert.Equal(t, 2.0, got["techanalyst_analyses_total|bullish|AAPL"])
	assert.Equal(t, 1.0, got["techanalyst_strategy_signals_total|bearish|momentum"])
	assert.Equal(t, 1.0, got["techanalyst_errors_total|store"])
	assert.Equal(t, 187.5, got["techanalyst_last_price|AAPL"])
	assert.Equal(t, 1.0, got["techanalyst_operation_duration_seconds|analyze"])
}

func TestNewIsSingleton(t *testing.T) {
	assert.Same(t, New(), New())
}
