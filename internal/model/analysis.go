package model

import "time"

// Seniority is the job seniority bucket a candidate is scored against.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
	SeniorityLead   Seniority = "lead"
)

// KnownSeniorities lists every accepted seniority bucket.
var KnownSeniorities = []Seniority{
	SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead,
}

// Valid reports whether s is one of the four seniority buckets.
func (s Seniority) Valid() bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead:
		return true
	}
	return false
}

// MetricCode identifies one of the 11 fixed sub-metrics.
type MetricCode string

const (
	MetricTDB MetricCode = "TDB" // Technical Depth & Breadth
	MetricXR  MetricCode = "XR"  // Experience Relevance
	MetricOI  MetricCode = "OI"  // Outcome & Impact
	MetricSC  MetricCode = "SC"  // Systems Complexity
	MetricDA  MetricCode = "DA"  // Domain Alignment
	MetricLC  MetricCode = "LC"  // Leadership & Collaboration
	MetricCE  MetricCode = "CE"  // Communication & Evidence quality
	MetricGA  MetricCode = "GA"  // Growth & Adaptability
	MetricSR  MetricCode = "SR"  // Stability & Risk
	MetricAC  MetricCode = "AC"  // Availability
	MetricCF  MetricCode = "CF"  // Compensation Fit
)

// MetricCodes lists all 11 sub-metric codes in canonical order.
var MetricCodes = []MetricCode{
	MetricTDB, MetricXR, MetricOI, MetricSC, MetricDA, MetricLC,
	MetricCE, MetricGA, MetricSR, MetricAC, MetricCF,
}

// MetricNames maps codes to display names.
var MetricNames = map[MetricCode]string{
	MetricTDB: "Technical Depth & Breadth",
	MetricXR:  "Experience Relevance",
	MetricOI:  "Outcome & Impact",
	MetricSC:  "Systems Complexity",
	MetricDA:  "Domain Alignment",
	MetricLC:  "Leadership & Collaboration",
	MetricCE:  "Communication & Evidence",
	MetricGA:  "Growth & Adaptability",
	MetricSR:  "Stability & Risk",
	MetricAC:  "Availability",
	MetricCF:  "Compensation Fit",
}

// SubMetricScore is one axis of candidate evaluation.
type SubMetricScore struct {
	Code      MetricCode `json:"code"`
	Score     float64    `json:"score"`
	Rationale string     `json:"rationale"`
}

// Severity grades how concerning a red flag is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RedFlag is a detected pattern that reduces the Stability & Risk sub-metric.
// Probe is a suggested clarifying interview question and is always populated;
// interview-guide generation downstream depends on it.
type RedFlag struct {
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Rationale   string   `json:"rationale"`
	Probe       string   `json:"probe"`
	Affected    []string `json:"affected,omitempty"`
}

// ConfidenceReport expresses how much the evidence supports trusting the
// computed score.
type ConfidenceReport struct {
	Overall          float64  `json:"overall"`
	AvgCredibility   float64  `json:"avg_credibility"`
	CoverageRatio    float64  `json:"coverage_ratio"`
	ConsistencyScore float64  `json:"consistency_score"`
	DataGaps         []string `json:"data_gaps,omitempty"`
	EvidenceDensity  float64  `json:"evidence_density"`
	Explanation      string   `json:"explanation"`
}

// Tier is the final categorical recommendation.
type Tier string

const (
	TierFastTrack Tier = "Fast-Track"
	TierInterview Tier = "Advance to Interview"
	TierHold      Tier = "Hold/More Info"
	TierNoGo      Tier = "No-Go"
)

// CandidateAnalysis is the full scoring result for one candidate against one
// job. It is immutable after construction; a re-score produces a new value.
type CandidateAnalysis struct {
	ID        string    `json:"id"`
	Candidate string    `json:"candidate"`
	Seniority Seniority `json:"seniority"`

	Evidence []EvidenceUnit                `json:"evidence"`
	Metrics  map[MetricCode]SubMetricScore `json:"metrics"`
	RedFlags []RedFlag                     `json:"red_flags,omitempty"`

	BoosterPoints float64  `json:"booster_points"`
	Boosters      []string `json:"boosters,omitempty"`

	Confidence ConfidenceReport `json:"confidence"`

	FinalScore float64 `json:"final_score"`
	Tier       Tier    `json:"tier"`

	// InsufficientEvidence marks analyses produced from an empty evidence
	// list (upstream extraction failure). The scores are all zero/neutral.
	InsufficientEvidence bool `json:"insufficient_evidence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MetricScore returns the score for code, or 0 when absent.
func (a *CandidateAnalysis) MetricScore(code MetricCode) float64 {
	if a == nil || a.Metrics == nil {
		return 0
	}
	return a.Metrics[code].Score
}
