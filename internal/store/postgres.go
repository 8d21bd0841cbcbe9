package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/hirelens/screening-cli/internal/db"
	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/resilience"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_analysis": `INSERT INTO analyses (id, candidate, seniority, tier, final_score, confidence, analysis, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO UPDATE SET candidate = EXCLUDED.candidate, seniority = EXCLUDED.seniority, tier = EXCLUDED.tier, final_score = EXCLUDED.final_score, confidence = EXCLUDED.confidence, analysis = EXCLUDED.analysis`,
	"get_analysis":    `SELECT analysis FROM analyses WHERE id = $1`,
	"delete_analysis": `DELETE FROM analyses WHERE id = $1`,
	"count_dlq":       `SELECT COUNT(*) FROM dead_letter_queue`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need direct
// query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	candidate   TEXT NOT NULL,
	seniority   TEXT NOT NULL,
	tier        TEXT NOT NULL,
	final_score DOUBLE PRECISION NOT NULL,
	confidence  DOUBLE PRECISION NOT NULL,
	analysis    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analyses_candidate ON analyses(candidate);
CREATE INDEX IF NOT EXISTS idx_analyses_tier ON analyses(tier);
CREATE INDEX IF NOT EXISTS idx_analyses_final_score ON analyses(final_score DESC);

CREATE TABLE IF NOT EXISTS dead_letter_queue (
	id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	candidate      TEXT NOT NULL,
	resume_path    TEXT,
	error          TEXT NOT NULL,
	error_type     TEXT NOT NULL DEFAULT 'transient',
	failed_phase   TEXT,
	retry_count    INTEGER NOT NULL DEFAULT 0,
	max_retries    INTEGER NOT NULL DEFAULT 3,
	next_retry_at  TIMESTAMPTZ NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_failed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_dlq_error_type ON dead_letter_queue(error_type);
CREATE INDEX IF NOT EXISTS idx_dlq_next_retry ON dead_letter_queue(next_retry_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, analysis *model.CandidateAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal analysis")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (id, candidate, seniority, tier, final_score, confidence, analysis, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   candidate = EXCLUDED.candidate, seniority = EXCLUDED.seniority,
		   tier = EXCLUDED.tier, final_score = EXCLUDED.final_score,
		   confidence = EXCLUDED.confidence, analysis = EXCLUDED.analysis`,
		analysis.ID, analysis.Candidate, string(analysis.Seniority), string(analysis.Tier),
		analysis.FinalScore, analysis.Confidence.Overall, analysisJSON, analysis.CreatedAt,
	)
	return eris.Wrap(err, "postgres: save analysis")
}

// SaveAnalyses bulk-upserts a batch of analyses through a temp-table COPY,
// which is considerably faster than row-at-a-time inserts for large pools.
func (s *PostgresStore) SaveAnalyses(ctx context.Context, analyses []model.CandidateAnalysis) error {
	if len(analyses) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(analyses))
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
			return eris.Wrapf(err, "postgres: marshal analysis %s", a.ID)
		}
		rows = append(rows, []any{
			a.ID, a.Candidate, string(a.Seniority), string(a.Tier),
			a.FinalScore, a.Confidence.Overall, analysisJSON, a.CreatedAt,
		})
	}

	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "analyses",
		Columns:      []string{"id", "candidate", "seniority", "tier", "final_score", "confidence", "analysis", "created_at"},
		ConflictKeys: []string{"id"},
		UpdateCols:   []string{"candidate", "seniority", "tier", "final_score", "confidence", "analysis"},
	}, rows)
	return eris.Wrap(err, "postgres: save analyses")
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*model.CandidateAnalysis, error) {
	var analysisJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT analysis FROM analyses WHERE id = $1`,
		id,
	).Scan(&analysisJSON)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get analysis %s", id)
	}

	var a model.CandidateAnalysis
	if err := json.Unmarshal(analysisJSON, &a); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal analysis")
	}
	return &a, nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]model.CandidateAnalysis, error) {
	query := `SELECT analysis FROM analyses WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Candidate != "" {
		query += fmt.Sprintf(` AND candidate = $%d`, argIdx)
		args = append(args, filter.Candidate)
		argIdx++
	}
	if filter.Tier != "" {
		query += fmt.Sprintf(` AND tier = $%d`, argIdx)
		args = append(args, string(filter.Tier))
		argIdx++
	}
	if filter.Seniority != "" {
		query += fmt.Sprintf(` AND seniority = $%d`, argIdx)
		args = append(args, string(filter.Seniority))
		argIdx++
	}
	if filter.MinScore > 0 {
		query += fmt.Sprintf(` AND final_score >= $%d`, argIdx)
		args = append(args, filter.MinScore)
		argIdx++
	}
	query += ` ORDER BY final_score DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list analyses")
	}
	defer rows.Close()

	var analyses []model.CandidateAnalysis
	for rows.Next() {
		var analysisJSON []byte
		if err := rows.Scan(&analysisJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan analysis")
		}
		var a model.CandidateAnalysis
		if err := json.Unmarshal(analysisJSON, &a); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal analysis")
		}
		analyses = append(analyses, a)
	}
	return analyses, eris.Wrap(rows.Err(), "postgres: list analyses iterate")
}

func (s *PostgresStore) DeleteAnalysis(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete analysis %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("analysis not found: %s", id)
	}
	return nil
}

// Dead letter queue methods

func (s *PostgresStore) EnqueueDLQ(ctx context.Context, entry resilience.DLQEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO dead_letter_queue
		 (id, candidate, resume_path, error, error_type, failed_phase, retry_count, max_retries, next_retry_at, created_at, last_failed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
		   error = $4, error_type = $5, failed_phase = $6, retry_count = $7,
		   next_retry_at = $9, last_failed_at = $11`,
		entry.ID, entry.Candidate, entry.ResumePath, entry.Error, entry.ErrorType,
		entry.FailedPhase, entry.RetryCount, entry.MaxRetries,
		entry.NextRetryAt, entry.CreatedAt, entry.LastFailedAt,
	)
	return eris.Wrap(err, "postgres: enqueue dlq")
}

func (s *PostgresStore) DequeueDLQ(ctx context.Context, filter resilience.DLQFilter) ([]resilience.DLQEntry, error) {
	query := `SELECT id, candidate, resume_path, error, error_type, failed_phase, retry_count, max_retries, next_retry_at, created_at, last_failed_at
	          FROM dead_letter_queue
	          WHERE next_retry_at <= now() AND retry_count < max_retries`
	args := []any{}
	argIdx := 1

	if filter.ErrorType != "" {
		query += fmt.Sprintf(` AND error_type = $%d`, argIdx)
		args = append(args, filter.ErrorType)
		argIdx++
	}

	query += ` ORDER BY next_retry_at ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: dequeue dlq")
	}
	defer rows.Close()

	var entries []resilience.DLQEntry
	for rows.Next() {
		var e resilience.DLQEntry
		var resumePath, failedPhase *string
		if err := rows.Scan(&e.ID, &e.Candidate, &resumePath, &e.Error, &e.ErrorType,
			&failedPhase, &e.RetryCount, &e.MaxRetries,
			&e.NextRetryAt, &e.CreatedAt, &e.LastFailedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dlq entry")
		}
		if resumePath != nil {
			e.ResumePath = *resumePath
		}
		if failedPhase != nil {
			e.FailedPhase = *failedPhase
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: dequeue dlq iterate")
}

func (s *PostgresStore) IncrementDLQRetry(ctx context.Context, id string, nextRetryAt time.Time, lastErr string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE dead_letter_queue
		 SET retry_count = retry_count + 1, next_retry_at = $1, error = $2, last_failed_at = now()
		 WHERE id = $3`,
		nextRetryAt, lastErr, id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: increment dlq retry %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("dlq_entry not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) RemoveDLQ(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM dead_letter_queue WHERE id = $1`, id)
	return eris.Wrap(err, "postgres: remove dlq")
}

func (s *PostgresStore) CountDLQ(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dead_letter_queue`).Scan(&count)
	return count, eris.Wrap(err, "postgres: count dlq")
}
