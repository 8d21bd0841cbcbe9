package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/hirelens/screening-cli/internal/engine"
	"github.com/hirelens/screening-cli/internal/extract"
	"github.com/hirelens/screening-cli/internal/ingest"
	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/store"
	anthropicpkg "github.com/hirelens/screening-cli/pkg/anthropic"
)

// scoringEnv holds the initialized store, engine, and extraction stack
// shared by the score/batch/serve commands.
type scoringEnv struct {
	Store     store.Store
	Engine    *engine.Engine
	Extractor extract.Extractor
	PDF       ingest.PDFReader

	// LLM is the raw extractor before caching and fallback wrapping; nil
	// when no API key is configured. Kept for cache warming and breaker
	// state reporting.
	LLM *extract.LLMExtractor
}

// Close releases resources held by the scoring environment.
func (se *scoringEnv) Close() {
	if se.Store != nil {
		_ = se.Store.Close()
	}
}

// resolveSeniority returns the explicitly requested bucket, or detects one
// from the extracted evidence and resume text when none was given.
func resolveSeniority(explicit string, units []model.EvidenceUnit, resumeText string) model.Seniority {
	if explicit != "" {
		return model.Seniority(explicit)
	}
	detected := extract.DetectSeniority(units, resumeText)
	zap.L().Info("auto-detected seniority", zap.String("seniority", string(detected)))
	return detected
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "screening.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEngine builds the scoring engine, overlaying a weight profile file when
// one is configured or passed via --weights.
func initEngine(weightsPath string) (*engine.Engine, error) {
	params := engine.DefaultParams()

	if weightsPath == "" {
		weightsPath = cfg.Engine.WeightsPath
	}
	if weightsPath != "" {
		profiles, err := engine.LoadWeightProfiles(weightsPath)
		if err != nil {
			return nil, eris.Wrapf(err, "load weight profiles %s", weightsPath)
		}
		params.Weights = profiles
		zap.L().Info("loaded weight profiles", zap.String("path", weightsPath))
	}

	return engine.New(params), nil
}

// initScoring sets up the store, engine, and extraction stack. The extractor
// is the LLM wrapped in the TTL cache with the regex heuristic as fallback;
// without an API key only the heuristic is available. Callers should defer
// env.Close().
func initScoring(ctx context.Context, mode, weightsPath string) (*scoringEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	eng, err := initEngine(weightsPath)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	pdf, err := ingest.NewPDFReader(cfg.Ingest)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	env := &scoringEnv{Store: st, Engine: eng, PDF: pdf}

	heuristic := extract.NewHeuristicExtractor()
	if cfg.Anthropic.Key == "" {
		zap.L().Debug("SCREEN_ANTHROPIC_KEY not set, using heuristic extraction only")
		env.Extractor = heuristic
		return env, nil
	}

	llmCfg := extract.DefaultLLMConfig()
	llmCfg.Model = cfg.Anthropic.Model
	llmCfg.MaxTokens = int64(cfg.Anthropic.MaxTokens)
	llmCfg.Temperature = cfg.Anthropic.Temperature
	llmCfg.RequestsPerMinute = cfg.Extract.RequestsPerMinute

	llm := extract.NewLLMExtractor(anthropicpkg.NewClient(cfg.Anthropic.Key), llmCfg)
	env.LLM = llm

	cached := extract.NewCachingExtractor(llm,
		time.Duration(cfg.Extract.CacheTTLHours)*time.Hour,
		cfg.Extract.CacheCapacity,
	)
	if cfg.Extract.HeuristicFallback {
		env.Extractor = extract.WithFallback(cached, heuristic)
	} else {
		env.Extractor = cached
	}
	return env, nil
}
