package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/screening-cli/internal/model"
)

func credibleUnit(typ model.EvidenceType, credibility float64, start, end int) model.EvidenceUnit {
	return model.EvidenceUnit{
		Type:             typ,
		Claim:            "verified engineering work",
		CredibilityScore: credibility,
		Time:             &model.TimeSpan{StartYear: start, EndYear: end},
	}
}

func TestEstimateConfidence_EmptyEvidence(t *testing.T) {
	e := testEngine(t)

	report := e.EstimateConfidence(nil, 0)

	assert.Zero(t, report.AvgCredibility)
	assert.Zero(t, report.CoverageRatio)
	assert.InDelta(t, 0.5, report.ConsistencyScore, 1e-9, "no dates is neutral, not distrustful")
	assert.InDelta(t, 0.1, report.Overall, 1e-9)
	assert.Len(t, report.DataGaps, 3, "gap list is capped at the top three")
	assert.Zero(t, report.EvidenceDensity)
	assert.NotEmpty(t, report.Explanation)
}

func TestEstimateConfidence_FullCoveragePerfectEvidence(t *testing.T) {
	e := testEngine(t)

	// Two roles and two projects feed every sub-metric at least twice.
	units := []model.EvidenceUnit{
		credibleUnit(model.EvidenceRole, 1.0, 2016, 2020),
		credibleUnit(model.EvidenceRole, 1.0, 2020, 2024),
		credibleUnit(model.EvidenceProject, 1.0, 2018, 2021),
		credibleUnit(model.EvidenceProject, 1.0, 2021, 2024),
	}

	report := e.EstimateConfidence(units, 800)

	assert.InDelta(t, 1.0, report.AvgCredibility, 1e-9)
	assert.InDelta(t, 1.0, report.CoverageRatio, 1e-9)
	assert.InDelta(t, 1.0, report.ConsistencyScore, 1e-9)
	assert.InDelta(t, 1.0, report.Overall, 1e-9)
	assert.Empty(t, report.DataGaps)
}

func TestEstimateConfidence_Bounded(t *testing.T) {
	e := testEngine(t)

	units := []model.EvidenceUnit{
		credibleUnit(model.EvidenceRole, 0.3, 1985, 2030),
		credibleUnit(model.EvidenceCert, 0.0, 0, 0),
	}

	report := e.EstimateConfidence(units, 50)
	assert.GreaterOrEqual(t, report.Overall, 0.0)
	assert.LessOrEqual(t, report.Overall, 1.0)
}

func TestConsistencyScore_ImpossibleDates(t *testing.T) {
	e := testEngine(t)

	t.Run("future end year", func(t *testing.T) {
		units := []model.EvidenceUnit{credibleUnit(model.EvidenceRole, 0.8, 2020, 2030)}
		assert.InDelta(t, 0.5, e.consistencyScore(units), 1e-9, "one of two dates is impossible")
	})

	t.Run("pre-1990 start year", func(t *testing.T) {
		units := []model.EvidenceUnit{credibleUnit(model.EvidenceRole, 0.8, 1987, 1995)}
		assert.InDelta(t, 0.5, e.consistencyScore(units), 1e-9)
	})

	t.Run("all dates valid", func(t *testing.T) {
		units := []model.EvidenceUnit{
			credibleUnit(model.EvidenceRole, 0.8, 2015, 2020),
			credibleUnit(model.EvidenceRole, 0.8, 2020, 2024),
		}
		assert.InDelta(t, 1.0, e.consistencyScore(units), 1e-9)
	})

	t.Run("no dates is neutral", func(t *testing.T) {
		units := []model.EvidenceUnit{{Type: model.EvidenceSkillUse, Claim: "built services in Go"}}
		assert.InDelta(t, 0.5, e.consistencyScore(units), 1e-9)
	})
}

func TestEvidenceDensity(t *testing.T) {
	e := testEngine(t)

	units := []model.EvidenceUnit{
		{Type: model.EvidenceRole, CredibilityScore: 0.8},
		{Type: model.EvidenceProject, CredibilityScore: 0.6},
		{Type: model.EvidenceGeneral, CredibilityScore: 0.3},
	}

	// Two credible units over 1000 words: 2 / (1.0 + 0.1).
	got := e.evidenceDensity(units, 1000)
	assert.InDelta(t, 2.0/1.1, got, 1e-9)

	// Zero word count must not divide by zero.
	got = e.evidenceDensity(units, 0)
	require.False(t, got != got, "density must not be NaN")
	assert.InDelta(t, 2.0/0.1, got, 1e-9)
}

func TestConfidenceExplanationBands(t *testing.T) {
	assert.Contains(t, confidenceExplanation(0.85), "High confidence")
	assert.Contains(t, confidenceExplanation(0.65), "Moderate confidence")
	assert.Contains(t, confidenceExplanation(0.45), "Low-moderate confidence")
	assert.Contains(t, confidenceExplanation(0.2), "Low confidence")
}
