package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hirelens/screening-cli/internal/model"
)

var titleCaser = cases.Title(language.English)

// maxHeuristicUnits bounds the fallback output so a keyword-dense resume
// cannot flood the scorer with low-quality units.
const maxHeuristicUnits = 15

var (
	yearsOfExperiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)

	educationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Bachelor|B\.?S\.?|B\.?Tech|B\.?E\.?|Master|M\.?S\.?|M\.?Tech|PhD|Ph\.?D\.?).{0,50}(Computer Science|Engineering|CS|Software)`),
		regexp.MustCompile(`(?i)(IIT|MIT|Stanford|Harvard|Berkeley|CMU|IIIT).{0,30}(Computer|Engineering|CS)`),
	}

	majorCompanyPattern = regexp.MustCompile(`(?i)(Google|Microsoft|Amazon|Apple|Facebook|Meta|Netflix|Tesla|IBM|Oracle|Intel|Adobe|Salesforce|Uber|Airbnb|Twitter|LinkedIn)\s*,?\s*(\d{4})?`)

	impactPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)%\s*(increase|improvement|reduction|faster|growth)`),
		regexp.MustCompile(`(?i)(reduced|increased|improved|optimized).{0,30}by\s*(\d+)%`),
		regexp.MustCompile(`(?i)(\d+)x\s*(faster|better|more|improvement)`),
	}

	projectVerbs = []string{"built", "developed", "created", "designed", "implemented", "launched"}

	leadershipSignals = []string{"led", "managed", "mentored", "team of", "supervised", "coordinated"}

	commonSkills = []string{
		"Python", "Java", "JavaScript", "React", "Node", "AWS", "Docker",
		"Kubernetes", "SQL", "MongoDB", "Machine Learning", "TypeScript",
		"Angular", "Vue", "Django", "Flask", "Spring", "C++", "C#", "Go", "Rust",
	}
)

// HeuristicExtractor builds evidence units from regex patterns over the raw
// resume text. It is the safety net for total LLM failure: coarse units with
// conservative credibility, never an error.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates the regex-based fallback extractor.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

func (h *HeuristicExtractor) Extract(_ context.Context, req Request) (*Result, error) {
	text := req.ResumeText
	var units []model.EvidenceUnit

	units = append(units, h.experienceUnit(text)...)
	units = append(units, h.skillsUnit(text)...)
	units = append(units, h.educationUnit(text)...)
	units = append(units, h.companyUnits(text)...)
	units = append(units, h.impactUnits(text)...)
	units = append(units, h.projectUnits(text)...)
	units = append(units, h.leadershipUnit(text)...)

	if len(units) == 0 {
		units = h.minimalUnit(text)
	}
	if len(units) > maxHeuristicUnits {
		units = units[:maxHeuristicUnits]
	}

	name := req.CandidateName
	if name == "" {
		name = GuessCandidateName(text)
	}

	zap.L().Debug("heuristic extraction",
		zap.String("candidate", name),
		zap.Int("units", len(units)),
	)
	return &Result{CandidateName: name, Units: units}, nil
}

func (h *HeuristicExtractor) experienceUnit(text string) []model.EvidenceUnit {
	matches := yearsOfExperiencePattern.FindAllStringSubmatch(text, -1)
	maxYears := 0
	for _, m := range matches {
		if y := atoiSafe(m[1]); y > maxYears && y < 60 {
			maxYears = y
		}
	}
	if maxYears == 0 {
		return nil
	}
	months := maxYears * 12
	return []model.EvidenceUnit{supplied(model.EvidenceUnit{
		Type:    model.EvidenceRole,
		Claim:   fmt.Sprintf("Professional experience: %d+ years", maxYears),
		Context: "stated in resume",
		Time:    &model.TimeSpan{DurationMonths: &months},
	}, 0.6, "experience duration stated in resume")}
}

func (h *HeuristicExtractor) skillsUnit(text string) []model.EvidenceUnit {
	var found []string
	for _, skill := range commonSkills {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
		if pattern.MatchString(text) {
			found = append(found, skill)
		}
	}
	if len(found) == 0 {
		return nil
	}
	listed := found
	if len(listed) > 10 {
		listed = listed[:10]
	}
	return []model.EvidenceUnit{supplied(model.EvidenceUnit{
		Type:    model.EvidenceSkillUse,
		Claim:   "Technical skills: " + strings.Join(listed, ", "),
		Context: "mentioned in resume",
	}, 0.7, fmt.Sprintf("skills explicitly mentioned: %d technologies", len(found)))}
}

func (h *HeuristicExtractor) educationUnit(text string) []model.EvidenceUnit {
	for _, pattern := range educationPatterns {
		if m := pattern.FindString(text); m != "" {
			if len(m) > 100 {
				m = m[:100]
			}
			return []model.EvidenceUnit{supplied(model.EvidenceUnit{
				Type:    model.EvidenceCert,
				Claim:   "Education: " + m,
				Context: "formal education background",
			}, 0.8, "educational qualification mentioned")}
		}
	}
	return nil
}

func (h *HeuristicExtractor) companyUnits(text string) []model.EvidenceUnit {
	matches := majorCompanyPattern.FindAllStringSubmatch(text, 3)
	var units []model.EvidenceUnit
	seen := map[string]bool{}
	for _, m := range matches {
		company := titleCaser.String(strings.ToLower(m[1]))
		if seen[company] {
			continue
		}
		seen[company] = true

		u := model.EvidenceUnit{
			Type:    model.EvidenceRole,
			Claim:   "Experience at " + company,
			Context: "worked at " + company,
			Org:     &model.Org{Company: company, Industry: "Tech", Size: "Large"},
		}
		score, rationale := 0.6, "major company mentioned"
		if year := atoiSafe(m[2]); year > 0 {
			months := 12
			u.Time = &model.TimeSpan{StartYear: year, DurationMonths: &months}
			u.Context += fmt.Sprintf(" in %d", year)
			score, rationale = 0.8, "major company with dates"
		}
		units = append(units, supplied(u, score, rationale))
	}
	return units
}

func (h *HeuristicExtractor) impactUnits(text string) []model.EvidenceUnit {
	var units []model.EvidenceUnit
	for _, pattern := range impactPatterns {
		matches := pattern.FindAllStringSubmatch(text, 3)
		for _, m := range matches {
			units = append(units, supplied(model.EvidenceUnit{
				Type:    model.EvidenceImpact,
				Claim:   "Quantified impact: " + strings.TrimSpace(m[0]),
				Context: "achievement with measurable outcome",
				Signals: &model.Signals{Delta: firstNumeric(m[1:])},
			}, 0.9, "quantified impact metric"))
		}
	}
	return units
}

func (h *HeuristicExtractor) projectUnits(text string) []model.EvidenceUnit {
	var units []model.EvidenceUnit
	for _, verb := range projectVerbs {
		pattern := regexp.MustCompile(`(?i)` + verb + `\s+([^.!?\n]{30,150})`)
		matches := pattern.FindAllStringSubmatch(text, 2)
		for _, m := range matches {
			claim := strings.ToUpper(verb[:1]) + verb[1:] + " " + strings.TrimSpace(m[1])
			if len(claim) > 90 {
				claim = claim[:90] + "..."
			}
			units = append(units, supplied(model.EvidenceUnit{
				Type:    model.EvidenceProject,
				Claim:   claim,
				Context: "project work described",
			}, 0.6, "project description found"))
		}
	}
	return units
}

func (h *HeuristicExtractor) leadershipUnit(text string) []model.EvidenceUnit {
	lower := strings.ToLower(text)
	for _, keyword := range leadershipSignals {
		if strings.Contains(lower, keyword) {
			return []model.EvidenceUnit{supplied(model.EvidenceUnit{
				Type:             model.EvidenceRole,
				Claim:            "Leadership: " + keyword + " team/individuals",
				Context:          "leadership experience indicated",
				SenioritySignals: []string{keyword},
			}, 0.6, "leadership keyword found")}
		}
	}
	return nil
}

// minimalUnit is the absolute floor: one low-credibility role unit so the
// analysis is flagged for manual review instead of silently empty.
func (h *HeuristicExtractor) minimalUnit(text string) []model.EvidenceUnit {
	context := strings.TrimSpace(text)
	if len(context) > 200 {
		context = context[:200]
	}
	months := 24
	return []model.EvidenceUnit{supplied(model.EvidenceUnit{
		Type:    model.EvidenceRole,
		Claim:   "Professional background indicated",
		Context: context,
		Time:    &model.TimeSpan{DurationMonths: &months},
	}, 0.4, "minimal evidence - requires manual review")}
}

func supplied(u model.EvidenceUnit, score float64, rationale string) model.EvidenceUnit {
	u.CredibilityScore = score
	u.CredibilityRationale = rationale
	u.CredibilitySupplied = true
	return u
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return 0
	}
	return n
}

func firstNumeric(groups []string) string {
	for _, g := range groups {
		for _, r := range g {
			if r >= '0' && r <= '9' {
				return g
			}
		}
	}
	return "significant"
}
