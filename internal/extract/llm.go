package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/resilience"
	"github.com/hirelens/screening-cli/pkg/anthropic"
)

const (
	// Excerpt limits keep prompt size bounded on very long inputs.
	defaultResumeExcerptChars = 12000
	defaultJobExcerptChars    = 3000
)

// systemPrompt is static across candidates, so it is sent as a cached system
// block: one primer request warms the cache, the rest of a batch reads it.
const systemPrompt = `You are a resume analyst. Extract specific evidence from the resume: for each job, project, skill, or achievement, create an evidence unit.

Return ONLY valid JSON (no markdown, no extra text) with this shape:
{
  "candidate_name": "Full Name from Resume",
  "evidence_units": [
    {
      "type": "role|project|skill_use|impact|publication|cert|general",
      "claim": "Software Engineer at Example Corp",
      "context": "Example Corp, 2020-2023, built scalable APIs",
      "time": {"start": 2020, "end": 2023, "months": 36},
      "org": {"company": "Example Corp", "industry": "Tech", "size": "Large"},
      "signals": {"delta": "25%", "value": "", "direction": "increased", "scale": "1M users", "stars": "", "contributors": ""},
      "proof": {"link": "", "repo": "", "patent": "", "award": ""},
      "seniority_signals": ["led team", "mentored juniors"],
      "credibility_score": 0.8,
      "credibility_rationale": "Has company, dates, specific role details"
    }
  ],
  "key_strengths": ["..."],
  "key_concerns": ["..."],
  "interview_focus_areas": ["..."],
  "suggested_questions": ["..."]
}

Extract 5-15 evidence units covering roles, projects, skills, and achievements. Be specific and thorough. Omit fields you have no evidence for rather than inventing values.`

// LLMConfig configures the Claude-backed extractor.
type LLMConfig struct {
	Model       string
	MaxTokens   int64
	Temperature float64

	// RequestsPerMinute bounds the API call rate. 0 disables limiting.
	RequestsPerMinute int

	Retry   resilience.RetryConfig
	Breaker resilience.CircuitBreakerConfig
}

// DefaultLLMConfig returns the reference extraction settings.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:             "claude-haiku-4-5-20251001",
		MaxTokens:         6000,
		Temperature:       0.2,
		RequestsPerMinute: 50,
		Retry:             resilience.DefaultRetryConfig(),
		Breaker:           resilience.DefaultCircuitBreakerConfig(),
	}
}

// LLMExtractor extracts evidence units via the Anthropic API, with rate
// limiting, retry, and a circuit breaker around every call.
type LLMExtractor struct {
	client  anthropic.Client
	cfg     LLMConfig
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
}

// NewLLMExtractor creates an extractor backed by the given client.
func NewLLMExtractor(client anthropic.Client, cfg LLMConfig) *LLMExtractor {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}
	return &LLMExtractor{
		client:  client,
		cfg:     cfg,
		limiter: limiter,
		breaker: resilience.NewCircuitBreaker(cfg.Breaker),
	}
}

// Warm primes the prompt cache with the extraction system prompt so batch
// fan-out hits a warm cache.
func (e *LLMExtractor) Warm(ctx context.Context) error {
	req := anthropic.MessageRequest{
		Model:     e.cfg.Model,
		MaxTokens: 16,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages:  []anthropic.Message{{Role: "user", Content: "ready"}},
	}
	_, err := anthropic.PrimerRequest(ctx, e.client, req)
	return err
}

// BreakerState exposes the circuit state for health reporting.
func (e *LLMExtractor) BreakerState() resilience.CircuitState {
	return e.breaker.State()
}

func (e *LLMExtractor) Extract(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, eris.New("extract: empty resume text")
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "extract: rate limit wait")
		}
	}

	temp := e.cfg.Temperature
	msgReq := anthropic.MessageRequest{
		Model:       e.cfg.Model,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: &temp,
		System:      anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: buildUserPrompt(req),
		}},
	}

	retryCfg := e.cfg.Retry
	retryCfg.OnRetry = resilience.RetryLogger("anthropic", "extract")

	resp, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return resilience.ExecuteVal(ctx, e.breaker, func(ctx context.Context) (*anthropic.MessageResponse, error) {
			return e.client.CreateMessage(ctx, msgReq)
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "extract: create message")
	}
	resp.Usage.LogCost(e.cfg.Model, "extract")

	result, err := parseExtraction(resp.Text())
	if err != nil {
		return nil, err
	}
	if result.CandidateName == "" {
		result.CandidateName = req.CandidateName
	}

	zap.L().Debug("evidence extracted",
		zap.String("candidate", result.CandidateName),
		zap.Int("units", len(result.Units)),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func buildUserPrompt(req Request) string {
	var sb strings.Builder
	if jd := excerpt(req.JobDescription, defaultJobExcerptChars); jd != "" {
		fmt.Fprintf(&sb, "JOB DESCRIPTION:\n%s\n\n", jd)
	}
	if extra := strings.TrimSpace(req.AdditionalContext); extra != "" {
		fmt.Fprintf(&sb, "ADDITIONAL CONTEXT:\n%s\n\n", extra)
	}
	fmt.Fprintf(&sb, "RESUME:\n%s\n", excerpt(req.ResumeText, defaultResumeExcerptChars))
	return sb.String()
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// extractionEnvelope mirrors the JSON shape the model is instructed to emit.
// Evidence units stay raw here; model.DecodeEvidenceList validates them.
type extractionEnvelope struct {
	CandidateName      string          `json:"candidate_name"`
	EvidenceUnits      json.RawMessage `json:"evidence_units"`
	KeyStrengths       []string        `json:"key_strengths"`
	KeyConcerns        []string        `json:"key_concerns"`
	InterviewFocus     []string        `json:"interview_focus_areas"`
	SuggestedQuestions []string        `json:"suggested_questions"`
}

func parseExtraction(text string) (*Result, error) {
	cleaned := cleanJSONResponse(text)
	if cleaned == "" {
		return nil, eris.New("extract: response contains no JSON object")
	}

	var env extractionEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, eris.Wrap(err, "extract: parse response envelope")
	}

	var units []model.EvidenceUnit
	skipped := 0
	if len(env.EvidenceUnits) > 0 {
		var err error
		units, skipped, err = model.DecodeEvidenceList(env.EvidenceUnits)
		if err != nil {
			return nil, eris.Wrap(err, "extract: decode evidence units")
		}
	}

	return &Result{
		CandidateName:      strings.TrimSpace(env.CandidateName),
		Units:              units,
		Skipped:            skipped,
		KeyStrengths:       env.KeyStrengths,
		KeyConcerns:        env.KeyConcerns,
		InterviewFocus:     env.InterviewFocus,
		SuggestedQuestions: env.SuggestedQuestions,
	}, nil
}

var (
	codeFencePattern = regexp.MustCompile("```(?:json)?\\s*")
	trailingComma    = regexp.MustCompile(`,(\s*[}\]])`)
)

// cleanJSONResponse strips markdown fences and any prose around the outermost
// JSON object, and fixes trailing commas. Models occasionally wrap or pad the
// JSON despite instructions.
func cleanJSONResponse(text string) string {
	text = codeFencePattern.ReplaceAllString(text, "")

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return ""
	}
	text = text[start : end+1]

	return strings.TrimSpace(trailingComma.ReplaceAllString(text, "$1"))
}
