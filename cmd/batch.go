package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hirelens/screening-cli/internal/engine"
	"github.com/hirelens/screening-cli/internal/extract"
	"github.com/hirelens/screening-cli/internal/ingest"
	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/resilience"
	"github.com/hirelens/screening-cli/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract and score a directory of resumes",
	Long: `Process every resume file in a directory: extract evidence,
score, and persist each analysis. Candidates are processed concurrently
and failures are recorded to the dead letter queue without aborting the
batch.`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("dir", "", "directory of resume files (.txt/.md/.pdf, required)")
	f.String("job", "", "path to job description text file (extraction context)")
	f.String("seniority", "", "seniority profile applied to the pool (default auto-detect per resume)")
	f.String("weights", "", "path to YAML weight profile")
	f.Int("limit", 0, "max resumes to process (0 = all)")
	f.Int("concurrency", 0, "concurrent candidates (default from config)")
	_ = batchCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir, _ := cmd.Flags().GetString("dir")
	jobPath, _ := cmd.Flags().GetString("job")
	seniority, _ := cmd.Flags().GetString("seniority")
	weightsPath, _ := cmd.Flags().GetString("weights")
	limit, _ := cmd.Flags().GetInt("limit")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	env, err := initScoring(ctx, "batch", weightsPath)
	if err != nil {
		return err
	}
	defer env.Close()

	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrentCandidates
	}

	var jobText string
	if jobPath != "" {
		data, err := os.ReadFile(jobPath)
		if err != nil {
			return eris.Wrapf(err, "batch: read job description %s", jobPath)
		}
		jobText = string(data)
	}

	paths, err := resumeFiles(dir)
	if err != nil {
		return err
	}

	// Prime the shared system-prompt cache so concurrent workers hit it.
	if env.LLM != nil {
		if err := env.LLM.Warm(ctx); err != nil {
			zap.L().Warn("prompt cache warmup failed", zap.Error(err))
		}
	}

	return processBatch(ctx, paths, limit, concurrency, env.Store,
		func(ctx context.Context, resumePath string) (*model.CandidateAnalysis, error) {
			return scoreResume(ctx, env, resumePath, jobText, seniority)
		})
}

// resumeFiles lists resume files in dir, sorted by name.
func resumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".pdf":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// scoreResume extracts and scores one resume file. An empty seniority is
// auto-detected per resume.
func scoreResume(ctx context.Context, env *scoringEnv, resumePath, jobText, seniority string) (*model.CandidateAnalysis, error) {
	resumeText, err := ingest.ReadResume(ctx, env.PDF, resumePath)
	if err != nil {
		return nil, err
	}

	result, err := env.Extractor.Extract(ctx, extract.Request{
		ResumeText:     resumeText,
		JobDescription: jobText,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "batch: extract %s", resumePath)
	}

	candidate := result.CandidateName
	if candidate == "" {
		candidate = extract.GuessCandidateName(resumeText)
	}

	analysis := env.Engine.Analyze(engine.Input{
		Candidate:  candidate,
		Seniority:  resolveSeniority(seniority, result.Units, resumeText),
		Evidence:   result.Units,
		ResumeText: resumeText,
	})

	if err := env.Store.SaveAnalysis(ctx, analysis); err != nil {
		return nil, eris.Wrapf(err, "batch: save %s", candidate)
	}
	return analysis, nil
}

// scoreFunc is the callback signature for processing one resume file.
type scoreFunc func(ctx context.Context, resumePath string) (*model.CandidateAnalysis, error)

// processBatch applies limit, then processes resumes concurrently. Individual
// failures are recorded to the dead letter queue and do not abort the batch.
func processBatch(ctx context.Context, paths []string, limit, concurrency int, st store.Store, score scoreFunc) error {
	if len(paths) == 0 {
		zap.L().Info("no resume files found")
		return nil
	}

	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	zap.L().Info("processing batch",
		zap.Int("resumes", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("resume", path))

			analysis, err := score(gctx, path)
			if err != nil {
				failed.Add(1)
				log.Error("scoring failed", zap.Error(err))
				if st != nil {
					if dlqErr := recordFailure(gctx, st, path, err); dlqErr != nil {
						log.Warn("failed to record dead letter entry", zap.Error(dlqErr))
					}
				}
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("candidate scored",
				zap.String("candidate", analysis.Candidate),
				zap.Float64("score", analysis.FinalScore),
				zap.String("tier", string(analysis.Tier)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

// recordFailure enqueues a failed resume for later retry.
func recordFailure(ctx context.Context, st store.Store, resumePath string, scoreErr error) error {
	now := time.Now().UTC()
	errMsg := scoreErr.Error()
	if len(errMsg) > 500 {
		errMsg = errMsg[:500]
	}
	return st.EnqueueDLQ(ctx, resilience.DLQEntry{
		Candidate:    strings.TrimSuffix(filepath.Base(resumePath), filepath.Ext(resumePath)),
		ResumePath:   resumePath,
		Error:        errMsg,
		ErrorType:    resilience.ClassifyError(scoreErr),
		FailedPhase:  "extract",
		MaxRetries:   3,
		NextRetryAt:  now.Add(15 * time.Minute),
		CreatedAt:    now,
		LastFailedAt: now,
	})
}
