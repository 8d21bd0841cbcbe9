package engine

import (
	"fmt"

	"github.com/hirelens/screening-cli/internal/model"
)

// metricEligibility maps each sub-metric to the evidence types that feed it.
var metricEligibility = map[model.MetricCode][]model.EvidenceType{
	model.MetricTDB: {model.EvidenceSkillUse, model.EvidenceProject, model.EvidenceRole},
	model.MetricXR:  {model.EvidenceRole, model.EvidenceProject},
	model.MetricOI:  {model.EvidenceImpact, model.EvidenceProject},
	model.MetricSC:  {model.EvidenceProject, model.EvidenceRole},
	model.MetricDA:  {model.EvidenceRole, model.EvidenceProject},
	model.MetricLC:  {model.EvidenceRole},
	model.MetricCE:  {model.EvidenceProject, model.EvidencePublication, model.EvidenceCert},
	model.MetricGA:  {model.EvidenceCert, model.EvidenceSkillUse, model.EvidenceProject},
	model.MetricSR:  {model.EvidenceRole},
	model.MetricAC:  {model.EvidenceRole},
	model.MetricCF:  {model.EvidenceRole},
}

// recencySensitive lists the metrics whose contributions decay with age.
// All other metrics are evaluated on intrinsic quality regardless of when
// the evidence occurred.
var recencySensitive = map[model.MetricCode]bool{
	model.MetricXR: true,
	model.MetricGA: true,
}

// leadershipContextWords are the extra trigger for Leadership & Collaboration
// eligibility beyond role-type evidence.
var leadershipContextWords = []string{"lead", "manage", "mentor", "team"}

// eligibleUnits filters units relevant to one sub-metric: type membership,
// plus the OI delta-signal and LC leadership-context triggers.
func (e *Engine) eligibleUnits(code model.MetricCode, units []model.EvidenceUnit) []*model.EvidenceUnit {
	types := metricEligibility[code]
	var out []*model.EvidenceUnit
	for i := range units {
		u := &units[i]
		if typeIn(u.Type, types) {
			out = append(out, u)
			continue
		}
		switch code {
		case model.MetricOI:
			if u.Signals != nil && u.Signals.Delta != "" {
				out = append(out, u)
			}
		case model.MetricLC:
			if containsAny(foldText(u.Context), leadershipContextWords) {
				out = append(out, u)
			}
		}
	}
	return out
}

// metricScore computes one sub-metric: weighted, capped, recency-adjusted
// contributions summed then pushed through the diminishing-returns sigmoid.
//
// With no eligible evidence the score is exactly 0, not sigmoid(0) — the
// midpoint would report ~50 for a metric we know nothing about.
func (e *Engine) metricScore(code model.MetricCode, units []model.EvidenceUnit) model.SubMetricScore {
	eligible := e.eligibleUnits(code, units)
	if len(eligible) == 0 {
		return model.SubMetricScore{
			Code:      code,
			Score:     0,
			Rationale: "no eligible evidence",
		}
	}

	p := &e.params
	maxContribution := p.UnitContributionCap * 100
	currentYear := e.now().Year()

	var raw float64
	for _, u := range eligible {
		contribution := u.CredibilityScore * 10

		if recencySensitive[code] && u.EndYear() != 0 {
			monthsAgo := float64(currentYear-u.EndYear()) * 12
			tau := p.TauSkills
			if code == model.MetricGA {
				tau = p.TauCerts
			}
			contribution *= RecencyWeight(monthsAgo, tau)
		}

		switch code {
		case model.MetricSC:
			if containsAny(foldText(u.Context), []string{"distributed", "scale"}) {
				contribution *= 1.5
			}
		case model.MetricOI:
			if u.Signals != nil && u.Signals.Delta != "" {
				contribution *= 1.3
			}
		}

		if contribution > maxContribution {
			contribution = maxContribution
		}
		raw += contribution
	}

	score := clampScore(sigmoidScore(raw, p.SigmoidMu, p.SigmoidSigma))
	return model.SubMetricScore{
		Code:      code,
		Score:     score,
		Rationale: fmt.Sprintf("calculated from %d evidence units", len(eligible)),
	}
}

// AllMetrics computes all 11 sub-metric scores.
func (e *Engine) AllMetrics(units []model.EvidenceUnit) map[model.MetricCode]model.SubMetricScore {
	out := make(map[model.MetricCode]model.SubMetricScore, len(model.MetricCodes))
	for _, code := range model.MetricCodes {
		out[code] = e.metricScore(code, units)
	}
	return out
}

func typeIn(t model.EvidenceType, set []model.EvidenceType) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}
