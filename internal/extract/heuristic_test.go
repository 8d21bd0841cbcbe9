package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/screening-cli/internal/model"
)

func heuristicUnits(t *testing.T, resume string) []model.EvidenceUnit {
	t.Helper()
	res, err := NewHeuristicExtractor().Extract(context.Background(), Request{ResumeText: resume})
	require.NoError(t, err)
	return res.Units
}

func unitsOfType(units []model.EvidenceUnit, typ model.EvidenceType) []model.EvidenceUnit {
	var out []model.EvidenceUnit
	for _, u := range units {
		if u.Type == typ {
			out = append(out, u)
		}
	}
	return out
}

func TestHeuristicExtractor_ExperienceAndSkills(t *testing.T) {
	units := heuristicUnits(t, "Jordan Reyes\n8+ years building services in Python, Go and AWS.")

	roles := unitsOfType(units, model.EvidenceRole)
	require.NotEmpty(t, roles)
	assert.Contains(t, roles[0].Claim, "8+ years")
	m, ok := roles[0].Months()
	require.True(t, ok)
	assert.Equal(t, 96, m)

	skills := unitsOfType(units, model.EvidenceSkillUse)
	require.Len(t, skills, 1)
	assert.Contains(t, skills[0].Claim, "Python")
	assert.Contains(t, skills[0].Claim, "Go")
	assert.InDelta(t, 0.7, skills[0].CredibilityScore, 1e-9)
	assert.True(t, skills[0].CredibilitySupplied)
}

func TestHeuristicExtractor_MajorCompanyWithYear(t *testing.T) {
	units := heuristicUnits(t, "Software Engineer, Google, 2021. Shipped search infrastructure.")

	roles := unitsOfType(units, model.EvidenceRole)
	require.NotEmpty(t, roles)

	var google *model.EvidenceUnit
	for i := range roles {
		if strings.Contains(roles[i].Claim, "Google") {
			google = &roles[i]
		}
	}
	require.NotNil(t, google)
	assert.Equal(t, 2021, google.StartYear())
	assert.InDelta(t, 0.8, google.CredibilityScore, 1e-9)
	require.NotNil(t, google.Org)
	assert.Equal(t, "Google", google.Org.Company)
}

func TestHeuristicExtractor_QuantifiedImpact(t *testing.T) {
	units := heuristicUnits(t, "Optimized the query planner and achieved a 35% improvement in latency.")

	impacts := unitsOfType(units, model.EvidenceImpact)
	require.NotEmpty(t, impacts)
	assert.Contains(t, impacts[0].Claim, "35%")
	require.NotNil(t, impacts[0].Signals)
	assert.NotEmpty(t, impacts[0].Signals.Delta)
	assert.InDelta(t, 0.9, impacts[0].CredibilityScore, 1e-9)
}

func TestHeuristicExtractor_ProjectsAndLeadership(t *testing.T) {
	resume := "Built a streaming ingestion pipeline processing telemetry from thousands of devices. " +
		"Led the platform team through two major migrations."

	units := heuristicUnits(t, resume)

	projects := unitsOfType(units, model.EvidenceProject)
	require.NotEmpty(t, projects)
	assert.Contains(t, projects[0].Claim, "Built")

	var leadership *model.EvidenceUnit
	for i := range units {
		if len(units[i].SenioritySignals) > 0 {
			leadership = &units[i]
		}
	}
	require.NotNil(t, leadership)
	assert.Equal(t, []string{"led"}, leadership.SenioritySignals)
}

func TestHeuristicExtractor_MinimalFallback(t *testing.T) {
	units := heuristicUnits(t, "hello")

	require.Len(t, units, 1)
	assert.Equal(t, model.EvidenceRole, units[0].Type)
	assert.InDelta(t, 0.4, units[0].CredibilityScore, 1e-9)
	assert.Contains(t, units[0].CredibilityRationale, "manual review")
}

func TestHeuristicExtractor_CapsUnitCount(t *testing.T) {
	// A resume dense with every pattern must still stay within the cap.
	resume := strings.Repeat(
		"Built a large distributed system for the data platform with many moving parts. "+
			"Developed a reporting service used across the company by several teams. "+
			"Improved throughput by 20% improvement. Reduced costs by 30%. 12 years Python Java AWS Docker. "+
			"Google, 2019. Microsoft, 2020. Amazon, 2021. Led a team of five. ", 3)

	units := heuristicUnits(t, resume)
	assert.LessOrEqual(t, len(units), maxHeuristicUnits)
}
