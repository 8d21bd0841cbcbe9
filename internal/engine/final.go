package engine

import "github.com/hirelens/screening-cli/internal/model"

// FinalScore applies the seniority weight vector to the 11 sub-metric
// scores, adds booster points, and applies the confidence discount. The
// discount scales the raw score between 90% (confidence 0) and 100%
// (confidence 1) — low confidence dampens, it never zeroes out an otherwise
// good score.
func (e *Engine) FinalScore(metrics map[model.MetricCode]model.SubMetricScore, seniority model.Seniority, confidence, boosterPoints float64) float64 {
	weights, ok := e.params.Weights[seniority]
	if !ok {
		weights = e.params.Weights[model.SenioritySenior]
	}

	var weighted float64
	for _, code := range model.MetricCodes {
		weighted += metrics[code].Score * float64(weights[code])
	}
	// The divisor is the nominal 100-point weight scale, not the vector
	// total: reference vectors total 70-110, so the seniority calibration
	// scales the whole average.
	raw := weighted/100.0 + boosterPoints

	return clampScore(raw * (0.9 + 0.1*confidence))
}

// DetermineTier maps a final score and confidence to the categorical
// recommendation. Evaluated top-down: confidence acts as a guardrail, so a
// high score with low confidence demotes to Hold/More Info rather than
// fast-tracking an unverified candidate.
func (e *Engine) DetermineTier(finalScore, confidence float64) model.Tier {
	p := &e.params
	switch {
	case finalScore >= p.TierFastTrack && confidence >= p.MinConfidenceFastTrack:
		return model.TierFastTrack
	case finalScore >= p.TierInterview && confidence >= p.MinConfidenceInterview:
		return model.TierInterview
	case finalScore >= p.TierHold:
		return model.TierHold
	case confidence < p.MinConfidenceInterview:
		return model.TierHold
	default:
		return model.TierNoGo
	}
}
