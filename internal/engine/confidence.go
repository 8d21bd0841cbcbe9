package engine

import (
	"fmt"

	"github.com/hirelens/screening-cli/internal/model"
)

// EstimateConfidence blends average credibility, per-metric evidence
// coverage, and internal date consistency into one [0,1] scalar, and lists
// the top data gaps for transparency.
func (e *Engine) EstimateConfidence(units []model.EvidenceUnit, resumeWordCount int) model.ConfidenceReport {
	p := &e.params

	var avgCredibility float64
	if len(units) > 0 {
		var sum float64
		for i := range units {
			sum += units[i].CredibilityScore
		}
		avgCredibility = sum / float64(len(units))
	}

	covered := 0
	var gaps []string
	for _, code := range model.MetricCodes {
		n := len(e.eligibleUnits(code, units))
		if n >= p.MinEvidencePerMetric {
			covered++
		} else {
			gaps = append(gaps, fmt.Sprintf("insufficient evidence for %s", code))
		}
	}
	coverageRatio := float64(covered) / float64(len(model.MetricCodes))
	if len(gaps) > 3 {
		gaps = gaps[:3]
	}

	consistency := e.consistencyScore(units)

	overall := clamp01(p.ConfidenceAlpha*avgCredibility +
		p.ConfidenceBeta*coverageRatio +
		p.ConfidenceGamma*consistency)

	return model.ConfidenceReport{
		Overall:          overall,
		AvgCredibility:   avgCredibility,
		CoverageRatio:    coverageRatio,
		ConsistencyScore: consistency,
		DataGaps:         gaps,
		EvidenceDensity:  e.evidenceDensity(units, resumeWordCount),
		Explanation:      confidenceExplanation(overall),
	}
}

// consistencyScore is 1 minus the fraction of extracted dates that are
// impossible (future years, or earlier than the plausibility floor). With no
// dates at all it returns 0.5 — neutral, neither confident nor distrustful.
func (e *Engine) consistencyScore(units []model.EvidenceUnit) float64 {
	currentYear := e.now().Year()
	floor := e.params.EarliestPlausibleYear

	dates := 0
	issues := 0
	check := func(year int) {
		if year == 0 {
			return
		}
		dates++
		if year > currentYear || year < floor {
			issues++
		}
	}
	for i := range units {
		check(units[i].StartYear())
		check(units[i].EndYear())
	}

	if dates == 0 {
		return 0.5
	}
	score := 1.0 - float64(issues)/float64(dates)
	if score < 0 {
		return 0
	}
	return score
}

// evidenceDensity is the count of credible units (credibility ≥ 0.6) per
// 1000 resume words. The epsilon keeps a zero word count from dividing by
// zero.
func (e *Engine) evidenceDensity(units []model.EvidenceUnit, resumeWordCount int) float64 {
	credible := 0
	for i := range units {
		if units[i].CredibilityScore >= 0.6 {
			credible++
		}
	}
	return float64(credible) / (float64(resumeWordCount)/1000.0 + e.params.EvidenceDensityEpsilon)
}

func confidenceExplanation(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "High confidence - strong evidence across most metrics with good verification"
	case confidence >= 0.6:
		return "Moderate confidence - decent evidence but some gaps in coverage or credibility"
	case confidence >= 0.4:
		return "Low-moderate confidence - limited evidence or verification, some metrics underrepresented"
	default:
		return "Low confidence - insufficient evidence, significant data gaps, or verification issues"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
