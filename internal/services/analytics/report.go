package analytics

import (
	"github.com/shopspring/decimal"

	"TechAnalyst/internal/domain/models"
)

// Report renders a report into its transport shape.
func Report(r *models.AnalysisReport) models.ReportView {
	strategies := make(map[string]models.StrategyView, len(r.Ensemble.Strategies))
	for _, s := range r.Ensemble.Strategies {
		metrics := make(map[string]float64, len(s.Metrics))
		for k, v := range s.Metrics {
			metrics[k] = v
		}
		strategies[s.Name] = models.StrategyView{
			Signal:     s.Signal,
			Confidence: Percent(s.Confidence),
			Metrics:    metrics,
		}
	}

	reasoning := make(map[string]models.IndicatorReasoning, len(r.BasicVote.Reasoning))
	for k, v := range r.BasicVote.Reasoning {
		reasoning[k] = v
	}

	return models.ReportView{
		Signal:          r.Ensemble.Composite.Signal,
		Confidence:      Percent(r.Ensemble.Composite.Confidence),
		StrategySignals: strategies,
		BasicVote: models.BasicVoteView{
			Signal:     r.BasicVote.Signal,
			Confidence: Percent(r.BasicVote.Confidence),
			Reasoning:  reasoning,
		},
	}
}

// Percent formats a [0,1] confidence as a whole percentage. The float
// product confidence*100 is rounded half to even, so 0.125 gives "12%" and
// 0.575 (57.4999...) gives "57%".
func Percent(confidence float64) string {
	return decimal.NewFromFloat(confidence*100).RoundBank(0).String() + "%"
}
