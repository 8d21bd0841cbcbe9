package engine

import "github.com/hirelens/screening-cli/internal/model"

// credibilityRule is one rung of the credibility decision ladder.
type credibilityRule struct {
	score     float64
	rationale string
	matches   func(p *Params, u *model.EvidenceUnit) bool
}

// credibilityLadder is evaluated top to bottom; the first matching rule wins.
// The rungs are not cumulative. Rank order and thresholds are a design
// contract of the scoring framework and must not be reordered.
var credibilityLadder = []credibilityRule{
	{
		score:     1.0,
		rationale: "external verifiable proof",
		matches: func(_ *Params, u *model.EvidenceUnit) bool {
			return u.HasProof()
		},
	},
	{
		score:     0.8,
		rationale: "quantified impact with org and dates",
		matches: func(_ *Params, u *model.EvidenceUnit) bool {
			return u.HasQuantifiedSignal() &&
				u.Org != nil && u.Org.Company != "" &&
				u.StartYear() != 0
		},
	},
	{
		score:     0.6,
		rationale: "descriptive with context and timeline",
		matches: func(p *Params, u *model.EvidenceUnit) bool {
			return u.Context != "" && u.StartYear() != 0 &&
				wordCount(u.Context) > p.ContextWordFloor
		},
	},
	{
		score:     0.3,
		rationale: "generic claim without specifics",
		matches: func(p *Params, u *model.EvidenceUnit) bool {
			return u.Claim != "" && wordCount(u.Claim) > p.ClaimWordFloor
		},
	},
}

// EstimateCredibility assigns a [0,1] credibility score and rationale to a
// unit from proof/signal/context heuristics. Deterministic: depends only on
// field presence, never on claim ordering.
func (e *Engine) EstimateCredibility(u *model.EvidenceUnit) (float64, string) {
	for _, rule := range credibilityLadder {
		if rule.matches(&e.params, u) {
			return rule.score, rule.rationale
		}
	}
	return 0.0, "insufficient evidence"
}
