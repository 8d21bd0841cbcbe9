package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirelens/screening-cli/internal/model"
)

func uniformMetrics(score float64) map[model.MetricCode]model.SubMetricScore {
	out := make(map[model.MetricCode]model.SubMetricScore, len(model.MetricCodes))
	for _, code := range model.MetricCodes {
		out[code] = model.SubMetricScore{Code: code, Score: score}
	}
	return out
}

func TestFinalScore_ConfidenceDiscountBounds(t *testing.T) {
	e := testEngine(t)
	metrics := uniformMetrics(80)

	// Uniform metrics at 80 with the senior vector total of 101 give a raw
	// weighted score of 80.8.
	zeroConf := e.FinalScore(metrics, model.SenioritySenior, 0, 0)
	fullConf := e.FinalScore(metrics, model.SenioritySenior, 1, 0)

	assert.InDelta(t, 72.72, zeroConf, 1e-9, "confidence 0 discounts to 90% of raw")
	assert.InDelta(t, 80.8, fullConf, 1e-9, "confidence 1 leaves the raw score intact")

	mid := e.FinalScore(metrics, model.SenioritySenior, 0.5, 0)
	assert.Greater(t, mid, zeroConf)
	assert.Less(t, mid, fullConf)
}

func TestFinalScore_BoostersAddBeforeDiscount(t *testing.T) {
	e := testEngine(t)
	metrics := uniformMetrics(50)

	// (50*91/100 + 15) * 0.95
	got := e.FinalScore(metrics, model.SeniorityMid, 0.5, 15)
	assert.InDelta(t, 57.475, got, 1e-9)
}

func TestFinalScore_DividesByNominalHundred(t *testing.T) {
	e := testEngine(t)
	metrics := uniformMetrics(80)

	// The divisor is the 100-point scale, not the vector total, so the
	// junior vector (total 70) dampens and the lead vector (total 110)
	// amplifies the same sub-metric average.
	junior := e.FinalScore(metrics, model.SeniorityJunior, 1, 0)
	lead := e.FinalScore(metrics, model.SeniorityLead, 1, 0)

	assert.InDelta(t, 56.0, junior, 1e-9)
	assert.InDelta(t, 88.0, lead, 1e-9)
}

func TestFinalScore_ClampedToHundred(t *testing.T) {
	e := testEngine(t)
	metrics := uniformMetrics(100)

	got := e.FinalScore(metrics, model.SeniorityLead, 1, 15)
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestFinalScore_UnknownSeniorityUsesSeniorWeights(t *testing.T) {
	e := testEngine(t)

	metrics := uniformMetrics(0)
	metrics[model.MetricTDB] = model.SubMetricScore{Code: model.MetricTDB, Score: 100}

	// Senior weights TDB at 28; an unknown seniority must produce the same
	// score as an explicit senior.
	unknown := e.FinalScore(metrics, model.Seniority("principal"), 1, 0)
	senior := e.FinalScore(metrics, model.SenioritySenior, 1, 0)
	assert.InDelta(t, senior, unknown, 1e-9)
	assert.InDelta(t, 28.0, senior, 1e-9)
}

func TestFinalScore_SeniorityShiftsWeighting(t *testing.T) {
	e := testEngine(t)

	// Only leadership evidence: lead profiles weight LC far above junior.
	metrics := uniformMetrics(0)
	metrics[model.MetricLC] = model.SubMetricScore{Code: model.MetricLC, Score: 100}

	junior := e.FinalScore(metrics, model.SeniorityJunior, 1, 0)
	lead := e.FinalScore(metrics, model.SeniorityLead, 1, 0)
	assert.Greater(t, lead, junior)
}

func TestDetermineTier(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name       string
		final      float64
		confidence float64
		want       model.Tier
	}{
		{"fast track", 90, 0.8, model.TierFastTrack},
		{"high score low confidence demotes to hold", 90, 0.3, model.TierHold},
		{"fast-track score with mid confidence interviews", 88, 0.6, model.TierInterview},
		{"interview", 78, 0.55, model.TierInterview},
		{"hold on score", 65, 0.9, model.TierHold},
		{"hold on low confidence", 40, 0.2, model.TierHold},
		{"no-go", 40, 0.8, model.TierNoGo},
		{"boundary fast track", 85, 0.7, model.TierFastTrack},
		{"boundary interview", 75, 0.5, model.TierInterview},
		{"boundary hold", 60, 0.9, model.TierHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.DetermineTier(tt.final, tt.confidence))
		})
	}
}
