package models

import (
	"fmt"
	"strings"
)

// SignalLabel is the direction of a trading signal.
type SignalLabel int

const (
	Neutral SignalLabel = iota
	Bullish
	Bearish
)

func (s SignalLabel) String() string {
	switch s {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "neutral"
	}
}

// Value maps the label onto the ensemble scale: bullish 1, neutral 0, bearish -1.
func (s SignalLabel) Value() float64 {
	switch s {
	case Bullish:
		return 1
	case Bearish:
		return -1
	default:
		return 0
	}
}

// ParseSignalLabel is the inverse of String.
func ParseSignalLabel(s string) (SignalLabel, error) {
	switch strings.ToLower(s) {
	case "bullish":
		return Bullish, nil
	case "bearish":
		return Bearish, nil
	case "neutral":
		return Neutral, nil
	default:
		return Neutral, fmt.Errorf("unknown signal label %q", s)
	}
}

func (s SignalLabel) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SignalLabel) UnmarshalText(b []byte) error {
	v, err := ParseSignalLabel(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StrategySignal is the output of one strategy evaluator. Metrics always
// carry every metric the strategy defines, with fallbacks substituted.
type StrategySignal struct {
	Signal     SignalLabel
	Confidence float64
	Metrics    map[string]float64
}

// CompositeSignal is the weighted fusion of the strategy signals.
type CompositeSignal struct {
	Signal     SignalLabel
	Confidence float64
	Score      float64 // raw weighted score in [-1, 1]
}

// IndicatorReasoning explains one basic indicator's vote.
type IndicatorReasoning struct {
	Signal  SignalLabel `json:"signal"`
	Details string      `json:"details"`
}

// BasicVote is the majority vote over the four basic indicators.
type BasicVote struct {
	Signal     SignalLabel
	Confidence float64
	Reasoning  map[string]IndicatorReasoning
}
