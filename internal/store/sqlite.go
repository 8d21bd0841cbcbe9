package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/resilience"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY,
	candidate   TEXT NOT NULL,
	seniority   TEXT NOT NULL,
	tier        TEXT NOT NULL,
	final_score REAL NOT NULL,
	confidence  REAL NOT NULL,
	analysis    TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS dead_letter_queue (
	id             TEXT PRIMARY KEY,
	candidate      TEXT NOT NULL,
	resume_path    TEXT,
	error          TEXT NOT NULL,
	error_type     TEXT NOT NULL DEFAULT 'transient',
	failed_phase   TEXT,
	retry_count    INTEGER NOT NULL DEFAULT 0,
	max_retries    INTEGER NOT NULL DEFAULT 3,
	next_retry_at  DATETIME NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
	last_failed_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_analyses_candidate ON analyses(candidate);
CREATE INDEX IF NOT EXISTS idx_analyses_tier ON analyses(tier);
CREATE INDEX IF NOT EXISTS idx_analyses_final_score ON analyses(final_score);
CREATE INDEX IF NOT EXISTS idx_dlq_error_type ON dead_letter_queue(error_type);
CREATE INDEX IF NOT EXISTS idx_dlq_next_retry ON dead_letter_queue(next_retry_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis *model.CandidateAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal analysis")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, candidate, seniority, tier, final_score, confidence, analysis, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   candidate = excluded.candidate, seniority = excluded.seniority,
		   tier = excluded.tier, final_score = excluded.final_score,
		   confidence = excluded.confidence, analysis = excluded.analysis`,
		analysis.ID, analysis.Candidate, string(analysis.Seniority), string(analysis.Tier),
		analysis.FinalScore, analysis.Confidence.Overall, string(analysisJSON), analysis.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: save analysis")
}

func (s *SQLiteStore) SaveAnalyses(ctx context.Context, analyses []model.CandidateAnalysis) error {
	if len(analyses) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	for i := range analyses {
		a := &analyses[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
		analysisJSON, err := json.Marshal(a)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal analysis %s", a.ID)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO analyses (id, candidate, seniority, tier, final_score, confidence, analysis, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
			   candidate = excluded.candidate, seniority = excluded.seniority,
			   tier = excluded.tier, final_score = excluded.final_score,
			   confidence = excluded.confidence, analysis = excluded.analysis`,
			a.ID, a.Candidate, string(a.Seniority), string(a.Tier),
			a.FinalScore, a.Confidence.Overall, string(analysisJSON), a.CreatedAt,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: save analysis %s", a.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit tx")
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*model.CandidateAnalysis, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT analysis FROM analyses WHERE id = ?`,
		id,
	)
	return scanAnalysis(row)
}

func (s *SQLiteStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]model.CandidateAnalysis, error) {
	query := `SELECT analysis FROM analyses WHERE 1=1`
	var args []any

	if filter.Candidate != "" {
		query += ` AND candidate = ?`
		args = append(args, filter.Candidate)
	}
	if filter.Tier != "" {
		query += ` AND tier = ?`
		args = append(args, string(filter.Tier))
	}
	if filter.Seniority != "" {
		query += ` AND seniority = ?`
		args = append(args, string(filter.Seniority))
	}
	if filter.MinScore > 0 {
		query += ` AND final_score >= ?`
		args = append(args, filter.MinScore)
	}
	query += ` ORDER BY final_score DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list analyses")
	}
	defer rows.Close()

	var analyses []model.CandidateAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, eris.Wrap(rows.Err(), "sqlite: list analyses iterate")
}

func (s *SQLiteStore) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM analyses WHERE id = ?`,
		id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete analysis %s", id)
	}
	return checkRowsAffected(res, "analysis", id)
}

// Dead letter queue methods

func (s *SQLiteStore) EnqueueDLQ(ctx context.Context, entry resilience.DLQEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dead_letter_queue
		 (id, candidate, resume_path, error, error_type, failed_phase, retry_count, max_retries, next_retry_at, created_at, last_failed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   error = excluded.error, error_type = excluded.error_type,
		   failed_phase = excluded.failed_phase, retry_count = excluded.retry_count,
		   next_retry_at = excluded.next_retry_at, last_failed_at = excluded.last_failed_at`,
		entry.ID, entry.Candidate, entry.ResumePath, entry.Error, entry.ErrorType,
		entry.FailedPhase, entry.RetryCount, entry.MaxRetries,
		entry.NextRetryAt, entry.CreatedAt, entry.LastFailedAt,
	)
	return eris.Wrap(err, "sqlite: enqueue dlq")
}

func (s *SQLiteStore) DequeueDLQ(ctx context.Context, filter resilience.DLQFilter) ([]resilience.DLQEntry, error) {
	query := `SELECT id, candidate, resume_path, error, error_type, failed_phase, retry_count, max_retries, next_retry_at, created_at, last_failed_at
	          FROM dead_letter_queue
	          WHERE next_retry_at <= datetime('now') AND retry_count < max_retries`
	var args []any

	if filter.ErrorType != "" {
		query += ` AND error_type = ?`
		args = append(args, filter.ErrorType)
	}

	query += ` ORDER BY next_retry_at ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: dequeue dlq")
	}
	defer rows.Close()

	var entries []resilience.DLQEntry
	for rows.Next() {
		e, err := scanDLQEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: dequeue dlq iterate")
}

func (s *SQLiteStore) IncrementDLQRetry(ctx context.Context, id string, nextRetryAt time.Time, lastErr string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE dead_letter_queue
		 SET retry_count = retry_count + 1, next_retry_at = ?, error = ?, last_failed_at = datetime('now')
		 WHERE id = ?`,
		nextRetryAt, lastErr, id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: increment dlq retry %s", id)
	}
	return checkRowsAffected(res, "dlq_entry", id)
}

func (s *SQLiteStore) RemoveDLQ(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM dead_letter_queue WHERE id = ?`, id)
	return eris.Wrap(err, "sqlite: remove dlq")
}

func (s *SQLiteStore) CountDLQ(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dead_letter_queue`).Scan(&count)
	return count, eris.Wrap(err, "sqlite: count dlq")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

// scanAnalysis reads the serialized analysis column. The JSON document is the
// source of truth; the other columns exist only for filtering and ordering.
func scanAnalysis(row scannable) (*model.CandidateAnalysis, error) {
	var analysisJSON string

	err := row.Scan(&analysisJSON)
	if err == sql.ErrNoRows {
		return nil, eris.New("analysis not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan analysis")
	}

	var a model.CandidateAnalysis
	if err := json.Unmarshal([]byte(analysisJSON), &a); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal analysis")
	}
	return &a, nil
}

func scanDLQEntry(row scannable) (*resilience.DLQEntry, error) {
	var e resilience.DLQEntry
	var resumePath, failedPhase sql.NullString

	err := row.Scan(&e.ID, &e.Candidate, &resumePath, &e.Error, &e.ErrorType,
		&failedPhase, &e.RetryCount, &e.MaxRetries,
		&e.NextRetryAt, &e.CreatedAt, &e.LastFailedAt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan dlq entry")
	}
	e.ResumePath = resumePath.String
	e.FailedPhase = failedPhase.String
	return &e, nil
}
