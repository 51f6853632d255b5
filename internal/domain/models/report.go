package models

import "time"

// NamedSignal pairs a strategy's output with its name and ensemble weight.
type NamedSignal struct {
	Name   string
	Weight float64
	StrategySignal
}

// EnsembleResult is the composite signal together with its inputs.
type EnsembleResult struct {
	Composite  CompositeSignal
	Strategies []NamedSignal
}

// AnalysisReport carries both signal pipelines side by side. They are never
// merged with each other.
type AnalysisReport struct {
	BasicVote BasicVote
	Ensemble  EnsembleResult
}

// ReportView is the transport shape of an AnalysisReport. Confidences are
// rendered as rounded percentage strings.
type ReportView struct {
	Signal          SignalLabel             `json:"signal"`
	Confidence      string                  `json:"confidence"`
	StrategySignals map[string]StrategyView `json:"strategy_signals"`
	BasicVote       BasicVoteView           `json:"basic_vote"`
}

type StrategyView struct {
	Signal     SignalLabel        `json:"signal"`
	Confidence string             `json:"confidence"`
	Metrics    map[string]float64 `json:"metrics"`
}

type BasicVoteView struct {
	Signal     SignalLabel                   `json:"signal"`
	Confidence string                        `json:"confidence"`
	Reasoning  map[string]IndicatorReasoning `json:"reasoning"`
}

// AnalysisResult is a report plus the bookkeeping of the run that produced it.
type AnalysisResult struct {
	RunID       string     `json:"run_id"`
	Symbol      string     `json:"symbol"`
	Timeframe   string     `json:"timeframe,omitempty"`
	Bars        int        `json:"bars"`
	From        time.Time  `json:"from"`
	To          time.Time  `json:"to"`
	LastClose   float64    `json:"last_close"`
	// RealizedVol is the annualised volatility of the last (up to) 60 log
	// returns.
	RealizedVol float64    `json:"realized_volatility"`
	Cached      bool       `json:"cached"`
	GeneratedAt time.Time  `json:"generated_at"`
	Report      ReportView `json:"report"`
}

// ReportEvent is published once per computed report.
type ReportEvent struct {
	RunID       string      `json:"run_id"`
	Symbol      string      `json:"symbol"`
	Timeframe   string      `json:"timeframe,omitempty"`
	Bars        int         `json:"bars"`
	Signal      SignalLabel `json:"signal"`
	Score       float64     `json:"score"`
	GeneratedAt time.Time   `json:"generated_at"`
	Report      ReportView  `json:"report"`
}

// StrategyInfo describes one ensemble member.
type StrategyInfo struct {
	Name    string   `json:"name"`
	Weight  float64  `json:"weight"`
	Metrics []string `json:"metrics"`
}

// StrategyCatalog lists the ensemble members and the basic vote indicators.
type StrategyCatalog struct {
	Strategies      []StrategyInfo `json:"strategies"`
	BasicIndicators []string       `json:"basic_indicators"`
}
