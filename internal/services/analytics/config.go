package analytics

import (
	"fmt"

	"TechAnalyst/internal/services/strategies"
)

// VoterConfig holds the windows of the basic-indicator vote.
type VoterConfig struct {
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	RSIPeriod       int
	BollingerWindow int
	BollingerK      float64
	OBVSlopeBars    int
	DropLookback    int
}

// Config is the complete engine configuration.
type Config struct {
	Strategies strategies.Config
	Voter      VoterConfig
}

// DefaultConfig returns the stock windows and weights.
func DefaultConfig() Config {
	return Config{
		Strategies: strategies.DefaultConfig(),
		Voter: VoterConfig{
			MACDFast:        12,
			MACDSlow:        26,
			MACDSignal:      9,
			RSIPeriod:       14,
			BollingerWindow: 20,
			BollingerK:      2,
			OBVSlopeBars:    5,
			DropLookback:    5,
		},
	}
}

func (c Config) Validate() error {
	v := c.Voter
	for name, n := range map[string]int{
		"macd_fast":        v.MACDFast,
		"macd_slow":        v.MACDSlow,
		"macd_signal":      v.MACDSignal,
		"rsi_period":       v.RSIPeriod,
		"bollinger_window": v.BollingerWindow,
		"obv_slope_bars":   v.OBVSlopeBars,
		"drop_lookback":    v.DropLookback,
	} {
		if n <= 0 {
			return fmt.Errorf("analytics: voter.%s must be > 0, got %d", name, n)
		}
	}
	if v.MACDFast >= v.MACDSlow {
		return fmt.Errorf("analytics: voter.macd_fast must be below macd_slow")
	}
	if v.BollingerK <= 0 {
		return fmt.Errorf("analytics: voter.bollinger_k must be > 0")
	}
	return c.Strategies.Validate()
}
