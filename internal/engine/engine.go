package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirelens/screening-cli/internal/model"
)

// Engine runs the evidence-based scoring pipeline. It is stateless per
// invocation: a single Engine value can score any number of candidates
// concurrently, one goroutine per candidate, because Analyze touches no
// shared mutable state.
type Engine struct {
	params Params

	// now is injectable for deterministic recency/consistency tests.
	now func() time.Time
}

// New creates an Engine with the given calibration.
func New(params Params) *Engine {
	return &Engine{params: params, now: time.Now}
}

// NewDefault creates an Engine with the reference calibration.
func NewDefault() *Engine {
	return New(DefaultParams())
}

// Params returns a copy of the engine calibration.
func (e *Engine) Params() Params { return e.params }

// Input is everything the engine consumes for one candidate. Evidence comes
// from an upstream extractor (LLM or regex fallback); the engine itself
// performs no I/O.
type Input struct {
	Candidate  string
	Seniority  model.Seniority
	Evidence   []model.EvidenceUnit
	ResumeText string
}

// Analyze runs the full pipeline: credibility → 11 sub-metrics → red flags
// (penalizing Stability & Risk) → boosters → confidence → final score and
// tier. Stages are strictly sequential within one candidate; each consumes
// the previous stage's complete output.
//
// An empty evidence list never errors: the result is a zeroed analysis with
// near-zero confidence, tier No-Go, and the InsufficientEvidence marker set.
func (e *Engine) Analyze(in Input) *model.CandidateAnalysis {
	seniority := in.Seniority
	if !seniority.Valid() {
		seniority = model.SenioritySenior
	}

	evidence := make([]model.EvidenceUnit, len(in.Evidence))
	copy(evidence, in.Evidence)

	// Upstream-provided credibility takes precedence; estimate the rest.
	for i := range evidence {
		if evidence[i].CredibilitySupplied {
			continue
		}
		score, rationale := e.EstimateCredibility(&evidence[i])
		evidence[i].CredibilityScore = score
		evidence[i].CredibilityRationale = rationale
	}

	metrics := e.AllMetrics(evidence)

	flags := e.DetectRedFlags(evidence, in.ResumeText, seniority)
	if len(flags) > 0 {
		sr := metrics[model.MetricSR]
		sr.Score = e.ApplyRedFlagPenalties(sr.Score, flags)
		metrics[model.MetricSR] = sr
	}

	boosterPoints, boosters := e.CalculateBoosters(evidence)

	confidence := e.EstimateConfidence(evidence, wordCount(in.ResumeText))

	finalScore := e.FinalScore(metrics, seniority, confidence.Overall, boosterPoints)
	tier := e.DetermineTier(finalScore, confidence.Overall)
	if len(evidence) == 0 {
		// Total extraction failure is a definitive No-Go, not a hold for
		// more information.
		tier = model.TierNoGo
	}

	analysis := &model.CandidateAnalysis{
		ID:                   uuid.New().String(),
		Candidate:            in.Candidate,
		Seniority:            seniority,
		Evidence:             evidence,
		Metrics:              metrics,
		RedFlags:             flags,
		BoosterPoints:        boosterPoints,
		Boosters:             boosters,
		Confidence:           confidence,
		FinalScore:           finalScore,
		Tier:                 tier,
		InsufficientEvidence: len(evidence) == 0,
		CreatedAt:            e.now().UTC(),
	}

	zap.L().Debug("candidate analyzed",
		zap.String("candidate", in.Candidate),
		zap.String("seniority", string(seniority)),
		zap.Int("evidence_units", len(evidence)),
		zap.Int("red_flags", len(flags)),
		zap.Float64("final_score", finalScore),
		zap.String("tier", string(tier)),
	)

	return analysis
}
