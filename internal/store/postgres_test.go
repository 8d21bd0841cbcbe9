package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/resilience"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveAnalysis_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO analyses .* ON CONFLICT`).
		WithArgs(pgxmock.AnyArg(), "Jordan Reyes", "senior", string(model.TierInterview),
			78.5, 0.7, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	a := testAnalysis("Jordan Reyes", model.SenioritySenior, model.TierInterview, 78.5)
	err := s.SaveAnalysis(context.Background(), &a)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAnalysis(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	a := testAnalysis("Jordan Reyes", model.SenioritySenior, model.TierFastTrack, 91)
	a.ID = "analysis-1"
	analysisJSON, err := json.Marshal(a)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT analysis FROM analyses WHERE id = \$1`).
		WithArgs("analysis-1").
		WillReturnRows(pgxmock.NewRows([]string{"analysis"}).AddRow(analysisJSON))

	got, err := s.GetAnalysis(context.Background(), "analysis-1")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", got.Candidate)
	assert.Equal(t, model.TierFastTrack, got.Tier)
	assert.InDelta(t, 91.0, got.FinalScore, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAnalysis_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT analysis FROM analyses WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAnalysis(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get analysis")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAnalyses_FilterArgs(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	a := testAnalysis("Ana", model.SenioritySenior, model.TierFastTrack, 90)
	analysisJSON, err := json.Marshal(a)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT analysis FROM analyses WHERE true AND tier = \$1 AND final_score >= \$2 ORDER BY final_score DESC`).
		WithArgs(string(model.TierFastTrack), 85.0, 50).
		WillReturnRows(pgxmock.NewRows([]string{"analysis"}).AddRow(analysisJSON))

	got, err := s.ListAnalyses(context.Background(), AnalysisFilter{
		Tier:     model.TierFastTrack,
		MinScore: 85,
		Limit:    50,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Candidate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteAnalysis_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM analyses WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteAnalysis(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnqueueDLQ(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO dead_letter_queue`).
		WithArgs("dlq-1", "Jordan Reyes", pgxmock.AnyArg(), "503 Service Unavailable", "transient",
			"extract", 0, 3, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.EnqueueDLQ(context.Background(), testDLQEntry("dlq-1", "Jordan Reyes"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DequeueDLQ(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	resumePath := "resumes/jordan.pdf"
	failedPhase := "extract"
	rows := pgxmock.NewRows([]string{
		"id", "candidate", "resume_path", "error", "error_type", "failed_phase",
		"retry_count", "max_retries", "next_retry_at", "created_at", "last_failed_at",
	}).AddRow("dlq-1", "Jordan Reyes", &resumePath, "timeout", "transient", &failedPhase,
		1, 3, now, now, now)

	mock.ExpectQuery(`SELECT .* FROM dead_letter_queue`).
		WithArgs(100).
		WillReturnRows(rows)

	entries, err := s.DequeueDLQ(context.Background(), resilience.DLQFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jordan Reyes", entries[0].Candidate)
	assert.Equal(t, "resumes/jordan.pdf", entries[0].ResumePath)
	assert.Equal(t, "extract", entries[0].FailedPhase)
	assert.Equal(t, 1, entries[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_IncrementDLQRetry_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE dead_letter_queue`).
		WithArgs(pgxmock.AnyArg(), "err", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.IncrementDLQRetry(context.Background(), "missing", time.Now(), "err")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountDLQ(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dead_letter_queue`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.CountDLQ(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
