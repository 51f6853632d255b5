package analytics

import (
	"math"

	"TechAnalyst/internal/domain/models"
)

const compositeThreshold = 0.2

// Combine fuses weighted strategy signals into one composite. The score is
// the confidence-weighted mean of the label values, 0 when no strategy
// carries weight.
func Combine(signals []models.NamedSignal) models.CompositeSignal {
	var weighted, total float64
	for _, s := range signals {
		wc := s.Weight * s.Confidence
		weighted += s.Signal.Value() * wc
		total += wc
	}
	score := 0.0
	if total > 0 {
		score = weighted / total
	}

	label := models.Neutral
	switch {
	case score > compositeThreshold:
		label = models.Bullish
	case score < -compositeThreshold:
		label = models.Bearish
	}
	return models.CompositeSignal{Signal: label, Confidence: math.Abs(score), Score: score}
}
