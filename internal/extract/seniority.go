package extract

import (
	"regexp"
	"strings"

	"github.com/hirelens/screening-cli/internal/model"
)

var (
	namePrefixPattern = regexp.MustCompile(`(?i)(Resume|CV|Curriculum Vitae)\s*:?\s*`)
	nameLinePattern   = regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+){1,3}$`)
	emailPattern      = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
)

// GuessCandidateName extracts a candidate name from the resume text: the
// first line if it looks like a name, otherwise the local part of the first
// email address. Returns "Candidate" when neither works.
func GuessCandidateName(resumeText string) string {
	for _, line := range strings.Split(resumeText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(namePrefixPattern.ReplaceAllString(line, ""))
		if nameLinePattern.MatchString(line) {
			return line
		}
		break
	}

	if email := emailPattern.FindString(resumeText); email != "" {
		local := strings.SplitN(email, "@", 2)[0]
		local = strings.NewReplacer(".", " ", "_", " ").Replace(local)
		return titleCaser.String(local)
	}

	return "Candidate"
}

var leadTitleKeywords = []string{"lead", "staff", "principal", "architect", "director"}

// DetectSeniority estimates the target seniority bucket from extracted
// evidence: total stated experience, leadership signal count, and title
// keywords, checked from most to least senior.
func DetectSeniority(units []model.EvidenceUnit, resumeText string) model.Seniority {
	var totalYears float64
	leadershipCount := 0
	for i := range units {
		if m, ok := units[i].Months(); ok {
			totalYears += float64(m) / 12.0
		}
		if len(units[i].SenioritySignals) > 0 {
			leadershipCount++
		}
	}

	lower := strings.ToLower(resumeText)
	hasLeadTitle := false
	for _, kw := range leadTitleKeywords {
		if strings.Contains(lower, kw) {
			hasLeadTitle = true
			break
		}
	}

	switch {
	case totalYears >= 10 || leadershipCount >= 3 || hasLeadTitle:
		return model.SeniorityLead
	case totalYears >= 5 || leadershipCount >= 1 || strings.Contains(lower, "senior"):
		return model.SenioritySenior
	case totalYears >= 2 || strings.Contains(lower, "engineer"):
		return model.SeniorityMid
	default:
		return model.SeniorityJunior
	}
}
