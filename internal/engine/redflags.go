package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hirelens/screening-cli/internal/model"
)

var (
	seniorAchievementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)report(?:ed|ing)?\s+to\s+(?:CEO|CTO|VP|President)`),
		regexp.MustCompile(`(?i)managed?\s+\d+\+?\s+(?:people|engineers|developers)`),
		regexp.MustCompile(`(?i)budget\s+of\s+\$?\d+M\+?`),
	}
	vagueTechPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)worked on\s+\w+`),
		regexp.MustCompile(`(?i)involved in\s+\w+`),
		regexp.MustCompile(`(?i)contributed to\s+\w+`),
		regexp.MustCompile(`(?i)participated in\s+\w+`),
		regexp.MustCompile(`(?i)assisted with\s+\w+`),
		regexp.MustCompile(`(?i)helped with\s+\w+`),
		regexp.MustCompile(`(?i)exposure to\s+\w+`),
	}
	improvementPattern = regexp.MustCompile(`(?i)(\d+)%\s*(?:increase|improvement|growth|reduction)`)
	deltaPattern       = regexp.MustCompile(`(\d+)`)
)

// DetectRedFlags scans role-type evidence and the raw resume text for
// patterns that warrant a clarifying conversation. Each detector runs
// independently; every produced flag carries an interview probe.
func (e *Engine) DetectRedFlags(units []model.EvidenceUnit, resumeText string, seniority model.Seniority) []model.RedFlag {
	var flags []model.RedFlag

	roles := rolesOf(units)
	foldedResume := foldText(resumeText)

	if f := e.detectShortTenures(roles); f != nil {
		flags = append(flags, *f)
	}
	if f := e.detectJobHopping(roles); f != nil {
		flags = append(flags, *f)
	}
	flags = append(flags, e.detectEmploymentGaps(roles, foldedResume)...)
	if f := e.detectDateConflicts(roles); f != nil {
		flags = append(flags, *f)
	}

	for i := range units {
		u := &units[i]
		if f := e.detectSeniorityMismatch(u, seniority); f != nil {
			flags = append(flags, *f)
		}
		if f := e.detectSoleCredit(u); f != nil {
			flags = append(flags, *f)
		}
		if f := e.detectVagueness(u); f != nil {
			flags = append(flags, *f)
		}
		flags = append(flags, e.detectImplausibleMetrics(u)...)
	}

	return flags
}

// ApplyRedFlagPenalties reduces the Stability & Risk score multiplicatively
// per flag severity, floored at 0. Compounding is multiplicative, never
// additive: two medium flags take 100 to 49, not 40.
func (e *Engine) ApplyRedFlagPenalties(srScore float64, flags []model.RedFlag) float64 {
	score := srScore
	for _, f := range flags {
		penalty, ok := e.params.SeverityPenalties[f.Severity]
		if !ok {
			penalty = e.params.SeverityPenalties[model.SeverityLow]
		}
		score *= 1 - penalty
	}
	if score < 0 {
		return 0
	}
	return score
}

func (e *Engine) detectShortTenures(roles []*model.EvidenceUnit) *model.RedFlag {
	var short []*model.EvidenceUnit
	for _, r := range roles {
		months, ok := r.Months()
		if !ok || months >= e.params.MinJobDurationMonths {
			continue
		}
		if containsAny(foldText(r.Context), e.params.FreelanceKeywords) {
			continue
		}
		short = append(short, r)
	}
	if len(short) == 0 {
		return nil
	}

	severity := model.SeverityLow
	if len(short) > 1 {
		severity = model.SeverityMedium
	}
	return &model.RedFlag{
		Description: fmt.Sprintf("Short tenure(s): %d role(s) under %d months", len(short), e.params.MinJobDurationMonths),
		Severity:    severity,
		Rationale:   "may indicate instability; internships and contract roles excluded",
		Probe:       "Can you walk through the circumstances and scope of your shorter engagements?",
		Affected:    claimsOf(short),
	}
}

func (e *Engine) detectJobHopping(roles []*model.EvidenceUnit) *model.RedFlag {
	if len(roles) < e.params.MaxJobChanges3Years {
		return nil
	}
	var starts []int
	for _, r := range roles {
		if y := r.StartYear(); y != 0 {
			starts = append(starts, y)
		}
	}
	if len(starts) < 4 {
		return nil
	}
	sort.Ints(starts)
	if starts[len(starts)-1]-starts[len(starts)-4] > 3 {
		return nil
	}
	return &model.RedFlag{
		Description: fmt.Sprintf("%d job changes within 3 years", len(roles)),
		Severity:    model.SeverityMedium,
		Rationale:   "job hopping pattern; layoffs and career pivots considered",
		Probe:       "What drove the transitions between your recent roles?",
	}
}

func (e *Engine) detectEmploymentGaps(roles []*model.EvidenceUnit, foldedResume string) []model.RedFlag {
	if len(roles) < 2 {
		return nil
	}

	var dated []*model.EvidenceUnit
	for _, r := range roles {
		if r.EndYear() != 0 {
			dated = append(dated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].EndYear() < dated[j].EndYear()
	})

	hasReason := containsAny(foldedResume, e.params.CareerBreakKeywords)

	var flags []model.RedFlag
	for i := 0; i+1 < len(dated); i++ {
		end := dated[i].EndYear()
		nextStart := dated[i+1].StartYear()
		if nextStart == 0 {
			continue
		}
		gapMonths := (nextStart - end) * 12
		if gapMonths <= e.params.MaxJobGapMonths {
			continue
		}

		severity := model.SeverityMedium
		rationale := "no explanation found in resume text"
		if hasReason {
			severity = model.SeverityLow
			rationale = "education/caregiving reasons considered"
		}
		flags = append(flags, model.RedFlag{
			Description: fmt.Sprintf("Employment gap: ~%d months between %d and %d", gapMonths, end, nextStart),
			Severity:    severity,
			Rationale:   rationale,
			Probe:       fmt.Sprintf("Can you walk me through your activities between %d and %d?", end, nextStart),
			Affected:    []string{dated[i].Claim, dated[i+1].Claim},
		})
	}
	return flags
}

func (e *Engine) detectDateConflicts(roles []*model.EvidenceUnit) *model.RedFlag {
	var fullTime []*model.EvidenceUnit
	for _, r := range roles {
		if r.StartYear() == 0 {
			continue
		}
		if containsAny(foldText(r.Context), e.params.FreelanceKeywords) {
			continue
		}
		fullTime = append(fullTime, r)
	}
	sort.SliceStable(fullTime, func(i, j int) bool {
		return fullTime[i].StartYear() < fullTime[j].StartYear()
	})

	for i := 0; i+1 < len(fullTime); i++ {
		end := fullTime[i].EndYear()
		if end == 0 {
			// Open-ended role overlaps anything that starts after it.
			end = 9999
		}
		if fullTime[i+1].StartYear() < end {
			return &model.RedFlag{
				Description: "Overlapping or conflicting employment dates",
				Severity:    model.SeverityHigh,
				Rationale:   "timeline inconsistencies across full-time roles",
				Probe:       "Can you clarify the overlapping employment periods on your resume?",
				Affected:    []string{fullTime[i].Claim, fullTime[i+1].Claim},
			}
		}
	}
	return nil
}

func (e *Engine) detectSeniorityMismatch(u *model.EvidenceUnit, seniority model.Seniority) *model.RedFlag {
	folded := foldText(u.Claim)

	if seniority == model.SeniorityJunior {
		for _, word := range e.params.LeadershipKeywords {
			if !strings.Contains(folded, word) {
				continue
			}
			months, ok := u.Months()
			if ok && months < e.params.MinJobDurationMonths {
				return &model.RedFlag{
					Description: fmt.Sprintf("Leadership claim %q in a junior role with %d months tenure", word, months),
					Severity:    model.SeverityHigh,
					Rationale:   "leadership scope unusual for role level and tenure",
					Probe:       fmt.Sprintf("Can you elaborate on how you %s this initiative at your level?", word),
					Affected:    []string{u.Claim},
				}
			}
		}
	}

	if seniority == model.SeniorityJunior || seniority == model.SeniorityMid {
		for _, pat := range seniorAchievementPatterns {
			if pat.MatchString(u.Claim) {
				return &model.RedFlag{
					Description: fmt.Sprintf("Senior-level achievement claimed for a %s position", seniority),
					Severity:    model.SeverityMedium,
					Rationale:   "scope of claim exceeds the target role level",
					Probe:       "Can you walk through the organizational structure and your specific role?",
					Affected:    []string{u.Claim},
				}
			}
		}
	}
	return nil
}

func (e *Engine) detectSoleCredit(u *model.EvidenceUnit) *model.RedFlag {
	folded := foldText(u.Claim)
	for _, phrase := range e.params.SoleCreditPhrases {
		if !strings.Contains(folded, phrase) {
			continue
		}
		significant := u.HasQuantifiedSignal() ||
			containsAny(folded, []string{"team", "project"})
		if !significant {
			continue
		}
		return &model.RedFlag{
			Description: fmt.Sprintf("Claims sole credit with phrase %q", phrase),
			Severity:    model.SeverityMedium,
			Rationale:   "sole-credit language on what appears to be team work",
			Probe:       "Who else was involved in this project and what were their contributions?",
			Affected:    []string{u.Claim},
		}
	}
	return nil
}

func (e *Engine) detectVagueness(u *model.EvidenceUnit) *model.RedFlag {
	text := u.Claim
	if u.Context != "" {
		text += " " + u.Context
	}
	folded := foldText(text)

	words := wordCount(folded)
	if words > 0 {
		buzzwords := len(matchAny(folded, e.params.Buzzwords))
		if float64(buzzwords)/float64(words) > 0.2 {
			return &model.RedFlag{
				Description: fmt.Sprintf("High buzzword density (%d buzzwords in %d words)", buzzwords, words),
				Severity:    model.SeverityLow,
				Rationale:   "claim relies on buzzwords instead of specifics",
				Probe:       "Can you provide specific examples of how this was implemented?",
				Affected:    []string{u.Claim},
			}
		}
	}

	// Vague technical phrasing with no quantified signal or proof behind it.
	if !u.HasQuantifiedSignal() && !u.HasProof() {
		for _, pat := range vagueTechPatterns {
			if pat.MatchString(u.Claim) {
				return &model.RedFlag{
					Description: "Vague technical claim without specifics",
					Severity:    model.SeverityLow,
					Rationale:   "participation phrasing without measurable contribution",
					Probe:       "What was your specific contribution and technical approach?",
					Affected:    []string{u.Claim},
				}
			}
		}
	}
	return nil
}

// detectImplausibleMetrics flags claimed percentage improvements that exceed
// the plausibility threshold for their duration window. A one-month-window
// claim above 200% is high severity; everything else flagged is medium.
func (e *Engine) detectImplausibleMetrics(u *model.EvidenceUnit) []model.RedFlag {
	pct, ok := claimedImprovement(u)
	if !ok {
		return nil
	}
	months, ok := u.Months()
	if !ok {
		months = 12
	}

	threshold, window := improvementThreshold(e.params.ImplausibleImprovement, months)
	if pct <= threshold {
		return nil
	}

	severity := model.SeverityMedium
	if window == 1 && pct > e.params.ImplausibleSeverePct {
		severity = model.SeverityHigh
	}
	return []model.RedFlag{{
		Description: fmt.Sprintf("%d%% improvement claimed within %d month(s)", pct, window),
		Severity:    severity,
		Rationale:   fmt.Sprintf("exceeds the %d%% plausibility threshold for a %d-month window", threshold, window),
		Probe:       fmt.Sprintf("Can you explain the baseline and methodology for the %d%% improvement?", pct),
		Affected:    []string{u.Claim},
	}}
}

// claimedImprovement extracts a claimed percentage improvement from the
// signals delta or from the claim text.
func claimedImprovement(u *model.EvidenceUnit) (int, bool) {
	if u.Signals != nil && u.Signals.Delta != "" {
		if m := deltaPattern.FindString(u.Signals.Delta); m != "" {
			pct, err := strconv.Atoi(m)
			if err == nil {
				return pct, true
			}
		}
	}
	if m := improvementPattern.FindStringSubmatch(u.Claim); m != nil {
		pct, err := strconv.Atoi(m[1])
		if err == nil {
			return pct, true
		}
	}
	return 0, false
}

// improvementThreshold picks the smallest duration window covering months and
// returns its threshold. Months beyond the largest window use the largest.
func improvementThreshold(table map[int]int, months int) (threshold, window int) {
	windows := make([]int, 0, len(table))
	for w := range table {
		windows = append(windows, w)
	}
	sort.Ints(windows)

	window = windows[len(windows)-1]
	for _, w := range windows {
		if months <= w {
			window = w
			break
		}
	}
	return table[window], window
}

func rolesOf(units []model.EvidenceUnit) []*model.EvidenceUnit {
	var roles []*model.EvidenceUnit
	for i := range units {
		if units[i].Type == model.EvidenceRole {
			roles = append(roles, &units[i])
		}
	}
	return roles
}

func claimsOf(units []*model.EvidenceUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Claim
	}
	return out
}
