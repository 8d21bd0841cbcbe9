package model

// EvidenceType tags a claim with the category that decides which sub-metrics
// it can feed.
type EvidenceType string

const (
	EvidenceSkillUse    EvidenceType = "skill_use"
	EvidenceProject     EvidenceType = "project"
	EvidenceRole        EvidenceType = "role"
	EvidenceImpact      EvidenceType = "impact"
	EvidencePublication EvidenceType = "publication"
	EvidenceCert        EvidenceType = "cert"
	EvidenceGeneral     EvidenceType = "general"
)

// KnownEvidenceTypes lists every accepted evidence type.
var KnownEvidenceTypes = []EvidenceType{
	EvidenceSkillUse, EvidenceProject, EvidenceRole, EvidenceImpact,
	EvidencePublication, EvidenceCert, EvidenceGeneral,
}

// TimeSpan holds the (possibly partial) time information attached to an
// evidence unit. Zero years mean "unknown"; DurationMonths is nil when the
// duration was not stated.
type TimeSpan struct {
	StartYear      int  `json:"start,omitempty"`
	EndYear        int  `json:"end,omitempty"`
	DurationMonths *int `json:"months,omitempty"`
}

// Org describes the organization a claim is attached to.
type Org struct {
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
	Size     string `json:"size,omitempty"`
}

// Signals holds structured quantities extracted from a claim. Presence of a
// delta or value strengthens credibility and triggers the Outcome & Impact
// multiplier.
type Signals struct {
	Delta        string `json:"delta,omitempty"`
	Value        string `json:"value,omitempty"`
	Direction    string `json:"direction,omitempty"`
	Multiplier   string `json:"multiplier,omitempty"`
	Scale        string `json:"scale,omitempty"`
	Stars        string `json:"stars,omitempty"`
	Contributors string `json:"contributors,omitempty"`
}

// Proof holds externally verifiable references. Any link/repo/patent is the
// strongest credibility signal.
type Proof struct {
	Link   string `json:"link,omitempty"`
	Repo   string `json:"repo,omitempty"`
	Patent string `json:"patent,omitempty"`
	Award  string `json:"award,omitempty"`
}

// EvidenceUnit is one discrete, typed claim extracted from a candidate's
// materials. Units are created once at the extraction boundary and consumed
// read-only by every scoring stage.
type EvidenceUnit struct {
	Type             EvidenceType `json:"type"`
	Claim            string       `json:"claim"`
	Context          string       `json:"context,omitempty"`
	Time             *TimeSpan    `json:"time,omitempty"`
	Org              *Org         `json:"org,omitempty"`
	Signals          *Signals     `json:"signals,omitempty"`
	Proof            *Proof       `json:"proof,omitempty"`
	SenioritySignals []string     `json:"seniority_signals,omitempty"`

	CredibilityScore     float64 `json:"credibility_score"`
	CredibilityRationale string  `json:"credibility_rationale"`

	// CredibilitySupplied records whether the upstream extractor provided its
	// own credibility score. Supplied scores take precedence; the estimator
	// never overwrites them.
	CredibilitySupplied bool `json:"-"`
}

// HasProof reports whether the unit carries any externally verifiable
// reference (link, repo, or patent).
func (u *EvidenceUnit) HasProof() bool {
	return u.Proof != nil && (u.Proof.Link != "" || u.Proof.Repo != "" || u.Proof.Patent != "")
}

// HasQuantifiedSignal reports whether the unit carries a delta or value signal.
func (u *EvidenceUnit) HasQuantifiedSignal() bool {
	return u.Signals != nil && (u.Signals.Delta != "" || u.Signals.Value != "")
}

// StartYear returns the start year, or 0 when unknown.
func (u *EvidenceUnit) StartYear() int {
	if u.Time == nil {
		return 0
	}
	return u.Time.StartYear
}

// EndYear returns the end year, or 0 when unknown.
func (u *EvidenceUnit) EndYear() int {
	if u.Time == nil {
		return 0
	}
	return u.Time.EndYear
}

// Months returns the stated duration in months and whether it was stated.
func (u *EvidenceUnit) Months() (int, bool) {
	if u.Time == nil || u.Time.DurationMonths == nil {
		return 0, false
	}
	return *u.Time.DurationMonths, true
}
