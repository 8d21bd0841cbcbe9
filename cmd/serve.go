package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirelens/screening-cli/internal/engine"
	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for scoring requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initScoring(ctx, "serve", "")
		if err != nil {
			return err
		}
		defer env.Close()

		mux := newServeMux(ctx, env)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// scoreWebhookRequest is the POST /webhook/score payload. Evidence is a raw
// evidence-unit array; malformed individual units are skipped, consistent
// with the extraction boundary.
type scoreWebhookRequest struct {
	Candidate string          `json:"candidate"`
	Seniority string          `json:"seniority"`
	Evidence  json.RawMessage `json:"evidence"`
	Resume    string          `json:"resume,omitempty"`
}

// newServeMux wires the webhook routes against a scoring environment. The
// context bounds background persistence, not individual requests.
func newServeMux(ctx context.Context, env *scoringEnv) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]string{"status": "ok"}
		if env.LLM != nil {
			resp["extraction_breaker"] = env.LLM.BreakerState().String()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("POST /webhook/score", func(w http.ResponseWriter, r *http.Request) {
		var req scoreWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if len(req.Evidence) == 0 {
			http.Error(w, `{"error":"evidence is required"}`, http.StatusBadRequest)
			return
		}

		units, skipped, err := model.DecodeEvidenceList(req.Evidence)
		if err != nil {
			http.Error(w, `{"error":"invalid evidence payload"}`, http.StatusBadRequest)
			return
		}

		analysis := env.Engine.Analyze(engine.Input{
			Candidate:  req.Candidate,
			Seniority:  resolveSeniority(req.Seniority, units, req.Resume),
			Evidence:   units,
			ResumeText: req.Resume,
		})

		// Persist asynchronously; the caller gets the analysis ID either way.
		go func() {
			if err := env.Store.SaveAnalysis(ctx, analysis); err != nil {
				zap.L().Error("webhook save failed",
					zap.String("candidate", analysis.Candidate),
					zap.Error(err),
				)
				return
			}
			zap.L().Info("webhook analysis saved",
				zap.String("candidate", analysis.Candidate),
				zap.Float64("score", analysis.FinalScore),
			)
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"id":            analysis.ID,
			"candidate":     analysis.Candidate,
			"final_score":   analysis.FinalScore,
			"tier":          analysis.Tier,
			"confidence":    analysis.Confidence.Overall,
			"skipped_units": skipped,
		})
	})

	mux.HandleFunc("GET /candidates", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))

		analyses, err := env.Store.ListAnalyses(r.Context(), store.AnalysisFilter{
			Candidate: q.Get("candidate"),
			Tier:      model.Tier(q.Get("tier")),
			Limit:     limit,
		})
		if err != nil {
			zap.L().Error("list candidates failed", zap.Error(err))
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"count":      len(analyses),
			"candidates": analyses,
		})
	})

	return mux
}
