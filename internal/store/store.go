package store

import (
	"context"
	"time"

	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/resilience"
)

// AnalysisFilter specifies criteria for listing stored analyses.
type AnalysisFilter struct {
	Candidate string          `json:"candidate,omitempty"`
	Tier      model.Tier      `json:"tier,omitempty"`
	Seniority model.Seniority `json:"seniority,omitempty"`
	MinScore  float64         `json:"min_score,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Offset    int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for candidate analyses and the
// dead letter queue of failed extractions.
type Store interface {
	// Analyses
	SaveAnalysis(ctx context.Context, analysis *model.CandidateAnalysis) error
	SaveAnalyses(ctx context.Context, analyses []model.CandidateAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*model.CandidateAnalysis, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]model.CandidateAnalysis, error)
	DeleteAnalysis(ctx context.Context, id string) error

	// Dead letter queue
	EnqueueDLQ(ctx context.Context, entry resilience.DLQEntry) error
	DequeueDLQ(ctx context.Context, filter resilience.DLQFilter) ([]resilience.DLQEntry, error)
	IncrementDLQRetry(ctx context.Context, id string, nextRetryAt time.Time, lastErr string) error
	RemoveDLQ(ctx context.Context, id string) error
	CountDLQ(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
