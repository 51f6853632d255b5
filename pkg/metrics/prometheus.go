package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"TechAnalyst/internal/domain/models"
)

// Recorder implements domain/repository.Metrics using Prometheus.
type Recorder struct {
	analyses        *prometheus.CounterVec
	strategySignals *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

var (
	defaultRecorder *Recorder
	defaultOnce     sync.Once
)

// New returns the process-wide recorder registered on the default registry.
func New() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewWithRegisterer(prometheus.DefaultRegisterer)
	})
	return defaultRecorder
}

// NewWithRegisterer registers a fresh set of collectors on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techanalyst_analyses_total",
				Help: "Completed analyses by symbol and composite signal",
			},
			[]string{"symbol", "signal"},
		),
		strategySignals: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techanalyst_strategy_signals_total",
				Help: "Strategy outputs by strategy and signal",
			},
			[]string{"strategy", "signal"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techanalyst_errors_total",
				Help: "Errors by kind",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "techanalyst_last_price",
				Help: "Last close seen in an analysed series",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "techanalyst_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordAnalysis(symbol string, signal models.SignalLabel) {
	r.analyses.WithLabelValues(symbol, signal.String()).Inc()
}

func (r *Recorder) RecordStrategySignal(strategy string, signal models.SignalLabel) {
	r.strategySignals.WithLabelValues(strategy, signal.String()).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
