package engine

import (
	"fmt"
	"strings"

	"github.com/hirelens/screening-cli/internal/model"
)

// CalculateBoosters awards capped bonus points for verifiable exceptional
// achievements. The total is a flat post-weighting bonus on the final score,
// independent of seniority calibration — it never feeds a sub-metric.
func (e *Engine) CalculateBoosters(units []model.EvidenceUnit) (float64, []string) {
	p := &e.params
	var total float64
	var applied []string

	for i := range units {
		u := &units[i]
		if hasAward(u) {
			total += p.BoosterAward
			applied = append(applied, "Award: "+truncateClaim(u.Claim))
		}
		if hasPatent(u) {
			total += p.BoosterPatent
			applied = append(applied, "Patent: "+truncateClaim(u.Claim))
		}
		if u.Type == model.EvidencePublication {
			total += p.BoosterPublication
			applied = append(applied, "Publication: "+truncateClaim(u.Claim))
		}
		if isMajorOSS(u) {
			total += p.BoosterMajorOSS
			applied = append(applied, "Major OSS: "+truncateClaim(u.Claim))
		}
	}

	if total > p.BoosterCap {
		total = p.BoosterCap
	}
	return total, applied
}

func hasAward(u *model.EvidenceUnit) bool {
	return (u.Proof != nil && u.Proof.Award != "") ||
		strings.Contains(string(u.Type), "award")
}

func hasPatent(u *model.EvidenceUnit) bool {
	return (u.Proof != nil && u.Proof.Patent != "") ||
		strings.Contains(string(u.Type), "patent")
}

// isMajorOSS requires a repo proof plus a popularity signal (stars or
// contributors) so a link to an empty repository earns nothing.
func isMajorOSS(u *model.EvidenceUnit) bool {
	if u.Proof == nil || u.Proof.Repo == "" {
		return false
	}
	return u.Signals != nil && (u.Signals.Stars != "" || u.Signals.Contributors != "")
}

func truncateClaim(claim string) string {
	const maxLen = 50
	if len(claim) <= maxLen {
		return claim
	}
	return fmt.Sprintf("%s...", claim[:maxLen])
}
