package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirelens/screening-cli/internal/model"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewDefault()
	e.now = fixedNow
	return e
}

func TestEstimateCredibility_Ladder(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name          string
		unit          model.EvidenceUnit
		wantScore     float64
		wantRationale string
	}{
		{
			name: "proof link wins over everything",
			unit: model.EvidenceUnit{
				Type:    model.EvidenceProject,
				Claim:   "built a payments platform from scratch",
				Context: "a long descriptive context with many words in it",
				Time:    &model.TimeSpan{StartYear: 2022},
				Org:     &model.Org{Company: "Acme"},
				Signals: &model.Signals{Delta: "25%"},
				Proof:   &model.Proof{Link: "https://example.com/case-study"},
			},
			wantScore:     1.0,
			wantRationale: "external verifiable proof",
		},
		{
			name: "repo proof alone",
			unit: model.EvidenceUnit{
				Type:  model.EvidenceProject,
				Claim: "maintains a CLI tool",
				Proof: &model.Proof{Repo: "github.com/x/y"},
			},
			wantScore: 1.0,
		},
		{
			name: "patent proof alone",
			unit: model.EvidenceUnit{
				Type:  model.EvidenceGeneral,
				Claim: "patented a compression scheme",
				Proof: &model.Proof{Patent: "US123456"},
			},
			wantScore: 1.0,
		},
		{
			name: "award proof is not verifiable proof",
			unit: model.EvidenceUnit{
				Type:  model.EvidenceGeneral,
				Claim: "won an internal hackathon award",
				Proof: &model.Proof{Award: "Hackathon 2023"},
			},
			wantScore: 0.3, // falls through to generic claim
		},
		{
			name: "quantified with org and start date",
			unit: model.EvidenceUnit{
				Type:    model.EvidenceImpact,
				Claim:   "reduced latency by 25 percent",
				Signals: &model.Signals{Delta: "25%"},
				Org:     &model.Org{Company: "Acme"},
				Time:    &model.TimeSpan{StartYear: 2022},
			},
			wantScore:     0.8,
			wantRationale: "quantified impact with org and dates",
		},
		{
			name: "quantified without org falls to context rung",
			unit: model.EvidenceUnit{
				Type:    model.EvidenceImpact,
				Claim:   "reduced latency by 25 percent",
				Signals: &model.Signals{Delta: "25%"},
				Context: "optimized the ingestion path of the analytics service significantly",
				Time:    &model.TimeSpan{StartYear: 2022},
			},
			wantScore: 0.6,
		},
		{
			name: "descriptive context with timeline",
			unit: model.EvidenceUnit{
				Type:    model.EvidenceRole,
				Claim:   "backend engineer at a fintech",
				Context: "owned the settlement service and its on-call rotation",
				Time:    &model.TimeSpan{StartYear: 2020, EndYear: 2023},
			},
			wantScore:     0.6,
			wantRationale: "descriptive with context and timeline",
		},
		{
			name: "context exactly five words is not enough",
			unit: model.EvidenceUnit{
				Type:    model.EvidenceRole,
				Claim:   "backend engineer at a fintech",
				Context: "owned the settlement service rotation",
				Time:    &model.TimeSpan{StartYear: 2020},
			},
			wantScore: 0.3,
		},
		{
			name: "generic claim over two words",
			unit: model.EvidenceUnit{
				Type:  model.EvidenceSkillUse,
				Claim: "knows Go well",
			},
			wantScore:     0.3,
			wantRationale: "generic claim without specifics",
		},
		{
			name: "two-word claim with nothing else",
			unit: model.EvidenceUnit{
				Type:  model.EvidenceSkillUse,
				Claim: "knows Go",
			},
			wantScore:     0.0,
			wantRationale: "insufficient evidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, rationale := e.EstimateCredibility(&tt.unit)
			assert.Equal(t, tt.wantScore, score)
			assert.NotEmpty(t, rationale, "rationale must never be empty")
			if tt.wantRationale != "" {
				assert.Equal(t, tt.wantRationale, rationale)
			}
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

func TestAnalyze_SuppliedCredibilityWins(t *testing.T) {
	e := testEngine(t)

	unit := model.EvidenceUnit{
		Type:                model.EvidenceProject,
		Claim:               "maintains a CLI tool",
		Proof:               &model.Proof{Repo: "github.com/x/y"}, // estimator would say 1.0
		CredibilityScore:    0.42,
		CredibilitySupplied: true,
	}

	analysis := e.Analyze(Input{Seniority: model.SenioritySenior, Evidence: []model.EvidenceUnit{unit}})
	assert.Equal(t, 0.42, analysis.Evidence[0].CredibilityScore,
		"estimator must not overwrite upstream-supplied credibility")
}
