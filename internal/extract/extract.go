// Package extract turns raw resume text into typed evidence units. The
// primary extractor calls Claude; a heuristic extractor covers total LLM
// failure so scoring always has something to work with.
package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/hirelens/screening-cli/internal/model"
)

// Request carries the candidate materials for one extraction.
type Request struct {
	CandidateName     string
	ResumeText        string
	JobDescription    string
	AdditionalContext string
}

// Result is the structured output of an extraction.
type Result struct {
	CandidateName      string               `json:"candidate_name"`
	Units              []model.EvidenceUnit `json:"evidence_units"`
	Skipped            int                  `json:"skipped_units,omitempty"`
	KeyStrengths       []string             `json:"key_strengths,omitempty"`
	KeyConcerns        []string             `json:"key_concerns,omitempty"`
	InterviewFocus     []string             `json:"interview_focus_areas,omitempty"`
	SuggestedQuestions []string             `json:"suggested_questions,omitempty"`
}

// Extractor produces evidence units from candidate materials.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*Result, error)
}

// fallbackExtractor tries the primary extractor first and falls back when it
// errors or produces no units.
type fallbackExtractor struct {
	primary  Extractor
	fallback Extractor
}

// WithFallback chains two extractors: fallback runs only when primary fails
// or yields an empty unit list.
func WithFallback(primary, fallback Extractor) Extractor {
	return &fallbackExtractor{primary: primary, fallback: fallback}
}

func (f *fallbackExtractor) Extract(ctx context.Context, req Request) (*Result, error) {
	res, err := f.primary.Extract(ctx, req)
	if err == nil && len(res.Units) > 0 {
		return res, nil
	}

	if err != nil {
		zap.L().Warn("primary extraction failed, using heuristic fallback",
			zap.String("candidate", req.CandidateName),
			zap.Error(err),
		)
	} else {
		zap.L().Warn("primary extraction produced no evidence, using heuristic fallback",
			zap.String("candidate", req.CandidateName),
		)
	}
	return f.fallback.Extract(ctx, req)
}
