// Package engine implements the evidence-based scoring pipeline: credibility
// estimation, the 11 sub-metric aggregators, red-flag detection, positive
// boosters, confidence blending, and the final tiered recommendation.
//
// The pipeline is pure computation over in-memory records: no I/O, no shared
// state between candidates, and deterministic output for a given input and
// clock.
package engine

import "github.com/hirelens/screening-cli/internal/model"

// Params holds every calibration constant of the scoring pipeline. The
// values carry domain calibration from the screening framework; treat them
// as configuration, not tunables to adjust casually.
type Params struct {
	// Sigmoid diminishing-returns transform.
	SigmoidMu    float64
	SigmoidSigma float64

	// UnitContributionCap is the fraction of a 100-point sub-metric a single
	// evidence unit may contribute (0.25 → 25 points).
	UnitContributionCap float64

	// Recency decay time constants, in months.
	TauSkills float64
	TauCerts  float64

	// Credibility ladder word-count thresholds.
	ContextWordFloor int
	ClaimWordFloor   int

	// Coverage: minimum eligible units per metric to count as covered.
	MinEvidencePerMetric int

	// Confidence blend weights.
	ConfidenceAlpha float64 // avg credibility
	ConfidenceBeta  float64 // coverage ratio
	ConfidenceGamma float64 // consistency

	// EvidenceDensityEpsilon guards the per-1000-words density denominator.
	EvidenceDensityEpsilon float64

	// Red flag thresholds.
	MinJobDurationMonths int
	MaxJobGapMonths      int
	MaxJobChanges3Years  int

	// Severity → multiplicative penalty on the Stability & Risk score.
	SeverityPenalties map[model.Severity]float64

	// Implausible-metric thresholds: claimed % improvement above the value
	// for the duration window (months) is flagged.
	ImplausibleImprovement map[int]int

	// ImplausibleSeverePct escalates a one-month-window claim above this
	// percentage from medium to high severity.
	ImplausibleSeverePct int

	// Booster points and cap.
	BoosterAward       float64
	BoosterPatent      float64
	BoosterPublication float64
	BoosterMajorOSS    float64
	BoosterCap         float64

	// Tier thresholds.
	TierFastTrack          float64
	TierInterview          float64
	TierHold               float64
	MinConfidenceFastTrack float64
	MinConfidenceInterview float64

	// EarliestPlausibleYear bounds date consistency checks from below.
	EarliestPlausibleYear int

	// Keyword sets for context-aware checks.
	CareerBreakKeywords []string
	FreelanceKeywords   []string
	LeadershipKeywords  []string
	SoleCreditPhrases   []string
	Buzzwords           []string

	// Weights holds the seniority-specific metric weight vectors, applied
	// against a nominal 100-point scale.
	Weights WeightProfiles
}

// DefaultParams returns the reference calibration.
func DefaultParams() Params {
	return Params{
		SigmoidMu:    50,
		SigmoidSigma: 15,

		UnitContributionCap: 0.25,

		TauSkills: 36,
		TauCerts:  24,

		ContextWordFloor: 5,
		ClaimWordFloor:   2,

		MinEvidencePerMetric: 2,

		ConfidenceAlpha: 0.4,
		ConfidenceBeta:  0.4,
		ConfidenceGamma: 0.2,

		EvidenceDensityEpsilon: 0.1,

		MinJobDurationMonths: 6,
		MaxJobGapMonths:      6,
		MaxJobChanges3Years:  4,

		SeverityPenalties: map[model.Severity]float64{
			model.SeverityLow:    0.10,
			model.SeverityMedium: 0.30,
			model.SeverityHigh:   0.50,
		},

		ImplausibleImprovement: map[int]int{
			1:  50,
			3:  100,
			6:  200,
			12: 500,
		},
		ImplausibleSeverePct: 200,

		BoosterAward:       5,
		BoosterPatent:      5,
		BoosterPublication: 4,
		BoosterMajorOSS:    3,
		BoosterCap:         15,

		TierFastTrack:          85,
		TierInterview:          75,
		TierHold:               60,
		MinConfidenceFastTrack: 0.7,
		MinConfidenceInterview: 0.5,

		EarliestPlausibleYear: 1990,

		CareerBreakKeywords: []string{
			"education", "study", "degree", "university", "college",
			"caregiving", "family", "parental leave", "sabbatical",
			"relocation", "visa", "immigration",
		},
		FreelanceKeywords: []string{
			"freelance", "contractor", "consultant", "independent",
			"contract", "self-employed", "consulting",
		},
		LeadershipKeywords: []string{
			"led", "architected", "designed", "spearheaded", "pioneered",
			"founded", "established", "managed", "directed", "headed",
			"orchestrated", "championed", "drove", "transformed",
		},
		SoleCreditPhrases: []string{
			"single-handedly", "solely", "independently", "alone",
			"exclusively", "entirely by myself", "without assistance",
		},
		Buzzwords: []string{
			"synergy", "leverage", "innovative", "cutting-edge",
			"revolutionary", "disruptive", "transformative", "passionate",
			"driven", "results-oriented", "thought-leader", "guru",
			"ninja", "rockstar", "unicorn", "game-changer", "paradigm",
			"bleeding-edge", "next-generation", "best-in-class",
		},

		Weights: DefaultWeights(),
	}
}
