package model

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// rawEvidenceUnit mirrors the JSON shape upstream extractors emit. The
// credibility score is a pointer so that "absent" and "zero" stay distinct.
type rawEvidenceUnit struct {
	Type             string    `json:"type"`
	Claim            string    `json:"claim"`
	Context          string    `json:"context"`
	Time             *TimeSpan `json:"time"`
	Org              *Org      `json:"org"`
	Signals          *Signals  `json:"signals"`
	Proof            *Proof    `json:"proof"`
	SenioritySignals []string  `json:"seniority_signals"`
	CredibilityScore *float64  `json:"credibility_score"`
	Rationale        string    `json:"credibility_rationale"`
}

// DecodeEvidenceList parses a JSON array of evidence-unit records, validating
// each once at the boundary so downstream code can assume well-typed access.
// Malformed units (missing type or claim) are skipped rather than aborting
// the batch; the skip count is returned. Unknown types degrade to "general".
// Upstream-supplied credibility scores are clamped into [0,1] and marked
// supplied so the estimator never overwrites them.
func DecodeEvidenceList(data []byte) ([]EvidenceUnit, int, error) {
	var raw []rawEvidenceUnit
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, eris.Wrap(err, "model: decode evidence list")
	}

	units := make([]EvidenceUnit, 0, len(raw))
	skipped := 0
	for i, r := range raw {
		u, ok := decodeUnit(r)
		if !ok {
			skipped++
			zap.L().Debug("skipping malformed evidence unit",
				zap.Int("index", i),
				zap.String("type", r.Type),
			)
			continue
		}
		units = append(units, u)
	}
	return units, skipped, nil
}

func decodeUnit(r rawEvidenceUnit) (EvidenceUnit, bool) {
	typ := strings.TrimSpace(r.Type)
	claim := strings.TrimSpace(r.Claim)
	if typ == "" || claim == "" {
		return EvidenceUnit{}, false
	}

	et := EvidenceType(typ)
	if !knownType(et) {
		et = EvidenceGeneral
	}

	u := EvidenceUnit{
		Type:                 et,
		Claim:                claim,
		Context:              strings.TrimSpace(r.Context),
		Time:                 r.Time,
		Org:                  r.Org,
		Signals:              r.Signals,
		Proof:                r.Proof,
		SenioritySignals:     r.SenioritySignals,
		CredibilityRationale: r.Rationale,
	}
	if r.CredibilityScore != nil {
		u.CredibilityScore = clamp01(*r.CredibilityScore)
		u.CredibilitySupplied = true
		// A rationale always accompanies a credibility score.
		if u.CredibilityRationale == "" {
			u.CredibilityRationale = "supplied by extractor"
		}
	}
	return u, true
}

func knownType(t EvidenceType) bool {
	for _, k := range KnownEvidenceTypes {
		if t == k {
			return true
		}
	}
	return false
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
