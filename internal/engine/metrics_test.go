package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/screening-cli/internal/model"
)

func provenUnit(typ model.EvidenceType, claim string) model.EvidenceUnit {
	return model.EvidenceUnit{
		Type:  typ,
		Claim: claim,
		Proof: &model.Proof{Link: "https://example.com/" + claim},
	}
}

func TestMetricScore_NoEligibleEvidence(t *testing.T) {
	e := testEngine(t)

	// A lone cert unit feeds CE and GA but nothing role-shaped.
	units := []model.EvidenceUnit{
		{Type: model.EvidenceCert, Claim: "AWS Solutions Architect", CredibilityScore: 1.0, CredibilitySupplied: true},
	}

	sr := e.metricScore(model.MetricSR, units)
	assert.Equal(t, 0.0, sr.Score, "zero eligible evidence must score exactly 0, not sigmoid(0)")
	assert.Equal(t, "no eligible evidence", sr.Rationale)
}

func TestMetricScore_Bounds(t *testing.T) {
	e := testEngine(t)

	// Heavy evidence volume stays within [0,100].
	var units []model.EvidenceUnit
	for i := 0; i < 50; i++ {
		u := provenUnit(model.EvidenceRole, "role")
		u.CredibilityScore = 1.0
		u.CredibilitySupplied = true
		units = append(units, u)
	}

	for _, code := range model.MetricCodes {
		s := e.metricScore(code, units)
		assert.GreaterOrEqual(t, s.Score, 0.0, "%s", code)
		assert.LessOrEqual(t, s.Score, 100.0, "%s", code)
		assert.False(t, math.IsNaN(s.Score) || math.IsInf(s.Score, 0), "%s", code)
	}
}

func TestMetricScore_DiminishingReturns(t *testing.T) {
	e := testEngine(t)

	mk := func(n int) []model.EvidenceUnit {
		units := make([]model.EvidenceUnit, n)
		for i := range units {
			units[i] = model.EvidenceUnit{
				Type: model.EvidenceRole, Claim: "role",
				CredibilityScore: 1.0, CredibilitySupplied: true,
			}
		}
		return units
	}

	few := e.metricScore(model.MetricXR, mk(3)).Score
	some := e.metricScore(model.MetricXR, mk(6)).Score
	many := e.metricScore(model.MetricXR, mk(30)).Score

	assert.Less(t, few, some)
	assert.Less(t, some, many)
	// Padding from 6 to 30 units gains less than going from 3 to 6.
	assert.Less(t, many-some, (some-few)*(30-6)/(6-3))
}

func TestMetricScore_SystemsComplexityMultiplier(t *testing.T) {
	e := testEngine(t)

	plain := []model.EvidenceUnit{{
		Type: model.EvidenceProject, Claim: "built a service",
		Context:          "a straightforward internal tool",
		CredibilityScore: 1.0, CredibilitySupplied: true,
	}}
	distributed := []model.EvidenceUnit{{
		Type: model.EvidenceProject, Claim: "built a service",
		Context:          "a distributed event pipeline at scale",
		CredibilityScore: 1.0, CredibilitySupplied: true,
	}}

	assert.Greater(t,
		e.metricScore(model.MetricSC, distributed).Score,
		e.metricScore(model.MetricSC, plain).Score,
		"distributed/scale context must get the 1.5x complexity multiplier")
}

func TestMetricScore_OutcomeImpactDeltaTrigger(t *testing.T) {
	e := testEngine(t)

	// A role unit is not OI-eligible by type, but a delta signal pulls it in.
	unit := model.EvidenceUnit{
		Type: model.EvidenceRole, Claim: "owned checkout conversion",
		Signals:          &model.Signals{Delta: "25%"},
		CredibilityScore: 0.8, CredibilitySupplied: true,
	}

	eligible := e.eligibleUnits(model.MetricOI, []model.EvidenceUnit{unit})
	require.Len(t, eligible, 1)

	score := e.metricScore(model.MetricOI, []model.EvidenceUnit{unit}).Score
	assert.Greater(t, score, 0.0)
}

func TestMetricScore_LeadershipContextTrigger(t *testing.T) {
	e := testEngine(t)

	unit := model.EvidenceUnit{
		Type: model.EvidenceProject, Claim: "migration program",
		Context:          "mentored four engineers through the rollout",
		CredibilityScore: 0.6, CredibilitySupplied: true,
	}

	eligible := e.eligibleUnits(model.MetricLC, []model.EvidenceUnit{unit})
	assert.Len(t, eligible, 1, "mentor keyword in context must trigger LC eligibility")
}

func TestMetricScore_RecencyAppliesOnlyToSensitiveMetrics(t *testing.T) {
	e := testEngine(t)

	old := model.EvidenceUnit{
		Type: model.EvidenceRole, Claim: "role",
		Time:             &model.TimeSpan{StartYear: 2010, EndYear: 2012},
		CredibilityScore: 1.0, CredibilitySupplied: true,
	}
	fresh := model.EvidenceUnit{
		Type: model.EvidenceRole, Claim: "role",
		Time:             &model.TimeSpan{StartYear: 2023, EndYear: 2025},
		CredibilityScore: 1.0, CredibilitySupplied: true,
	}

	// XR is recency-sensitive: the stale role must score lower.
	oldXR := e.metricScore(model.MetricXR, []model.EvidenceUnit{old}).Score
	freshXR := e.metricScore(model.MetricXR, []model.EvidenceUnit{fresh}).Score
	assert.Less(t, oldXR, freshXR)

	// TDB ignores time entirely: identical contributions either way.
	oldTDB := e.metricScore(model.MetricTDB, []model.EvidenceUnit{old}).Score
	freshTDB := e.metricScore(model.MetricTDB, []model.EvidenceUnit{fresh}).Score
	assert.Equal(t, oldTDB, freshTDB)
}

func TestAllMetrics_Complete(t *testing.T) {
	e := testEngine(t)

	metrics := e.AllMetrics(nil)
	require.Len(t, metrics, 11)
	for _, code := range model.MetricCodes {
		m, ok := metrics[code]
		require.True(t, ok, "missing metric %s", code)
		assert.Equal(t, code, m.Code)
		assert.Equal(t, 0.0, m.Score)
	}
}
