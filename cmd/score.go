package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirelens/screening-cli/internal/engine"
	"github.com/hirelens/screening-cli/internal/extract"
	"github.com/hirelens/screening-cli/internal/ingest"
	"github.com/hirelens/screening-cli/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single candidate",
	Long: `Score one candidate against a seniority profile.

Evidence can come from a pre-extracted JSON file (--evidence) or be
extracted from a resume file (--resume with --extract; .txt, .md, and
.pdf are supported). With both
--evidence and --resume, the resume text feeds red-flag keyword scanning
and evidence-density estimation but is not re-extracted.

Examples:
  # Score pre-extracted evidence
  score --evidence evidence.json --seniority senior

  # Extract evidence from a resume, then score and persist
  score --resume resume.txt --extract --seniority mid --save

  # Custom weight profile, JSON output
  score --evidence evidence.json --weights profile.yaml --format json`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("evidence", "", "path to evidence units JSON file")
	f.String("resume", "", "path to resume text file")
	f.String("job", "", "path to job description text file (extraction context)")
	f.Bool("extract", false, "extract evidence from --resume before scoring")
	f.String("candidate", "", "candidate name (default: detected from resume)")
	f.String("seniority", "", "seniority profile: junior, mid, senior, lead (default auto-detect)")
	f.String("weights", "", "path to YAML weight profile (overrides config)")
	f.String("format", "table", "output format: table or json")
	f.Bool("save", false, "persist the analysis to the store")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	evidencePath, _ := cmd.Flags().GetString("evidence")
	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	doExtract, _ := cmd.Flags().GetBool("extract")
	candidate, _ := cmd.Flags().GetString("candidate")
	seniority, _ := cmd.Flags().GetString("seniority")
	weightsPath, _ := cmd.Flags().GetString("weights")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	if evidencePath == "" && !doExtract {
		return eris.New("score: provide --evidence, or --resume with --extract")
	}
	if doExtract && resumePath == "" {
		return eris.New("score: --extract requires --resume")
	}
	if format != "table" && format != "json" {
		return eris.Errorf("score: --format must be table or json (got %q)", format)
	}

	mode := "score"
	if doExtract {
		mode = "extract"
	}
	env, err := initScoring(ctx, mode, weightsPath)
	if err != nil {
		return err
	}
	defer env.Close()

	var resumeText string
	if resumePath != "" {
		resumeText, err = ingest.ReadResume(ctx, env.PDF, resumePath)
		if err != nil {
			return err
		}
	}

	var units []model.EvidenceUnit
	switch {
	case evidencePath != "":
		data, err := os.ReadFile(evidencePath)
		if err != nil {
			return eris.Wrapf(err, "score: read evidence %s", evidencePath)
		}
		var skipped int
		units, skipped, err = model.DecodeEvidenceList(data)
		if err != nil {
			return eris.Wrap(err, "score: decode evidence")
		}
		if skipped > 0 {
			zap.L().Warn("skipped malformed evidence units", zap.Int("skipped", skipped))
		}
	default:
		var jobText string
		if jobPath != "" {
			data, err := os.ReadFile(jobPath)
			if err != nil {
				return eris.Wrapf(err, "score: read job description %s", jobPath)
			}
			jobText = string(data)
		}
		result, err := env.Extractor.Extract(ctx, extract.Request{
			CandidateName:  candidate,
			ResumeText:     resumeText,
			JobDescription: jobText,
		})
		if err != nil {
			return eris.Wrap(err, "score: extract evidence")
		}
		units = result.Units
		if candidate == "" {
			candidate = result.CandidateName
		}
	}

	if candidate == "" && resumeText != "" {
		candidate = extract.GuessCandidateName(resumeText)
	}
	if candidate == "" {
		candidate = "Candidate"
	}

	analysis := env.Engine.Analyze(engine.Input{
		Candidate:  candidate,
		Seniority:  resolveSeniority(seniority, units, resumeText),
		Evidence:   units,
		ResumeText: resumeText,
	})

	if save {
		if err := env.Store.SaveAnalysis(ctx, analysis); err != nil {
			return eris.Wrap(err, "score: save analysis")
		}
		zap.L().Info("analysis saved", zap.String("id", analysis.ID))
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analysis), "score: encode analysis")
	}
	printAnalysis(os.Stdout, analysis)
	return nil
}

// printAnalysis renders a single analysis as a readable report.
func printAnalysis(w io.Writer, a *model.CandidateAnalysis) {
	fmt.Fprintf(w, "Candidate:   %s\n", a.Candidate)
	fmt.Fprintf(w, "Seniority:   %s\n", a.Seniority)
	fmt.Fprintf(w, "Final score: %.1f / 100\n", a.FinalScore)
	fmt.Fprintf(w, "Tier:        %s\n", a.Tier)
	fmt.Fprintf(w, "Confidence:  %.2f (%s)\n", a.Confidence.Overall, a.Confidence.Explanation)
	if a.InsufficientEvidence {
		fmt.Fprintln(w, "\nNo usable evidence was extracted; all scores are floor values.")
		return
	}

	fmt.Fprintln(w, "\nSub-metrics:")
	for _, code := range model.MetricCodes {
		m := a.Metrics[code]
		fmt.Fprintf(w, "  %-4s %-28s %5.1f  %s\n", code, model.MetricNames[code], m.Score, m.Rationale)
	}

	if len(a.RedFlags) > 0 {
		fmt.Fprintln(w, "\nRed flags:")
		for _, f := range a.RedFlags {
			fmt.Fprintf(w, "  [%s] %s\n", f.Severity, f.Description)
			fmt.Fprintf(w, "         probe: %s\n", f.Probe)
		}
	}

	if len(a.Boosters) > 0 {
		fmt.Fprintf(w, "\nBoosters (+%.0f, capped):\n", a.BoosterPoints)
		for _, b := range a.Boosters {
			fmt.Fprintf(w, "  %s\n", b)
		}
	}

	if len(a.Confidence.DataGaps) > 0 {
		fmt.Fprintln(w, "\nData gaps:")
		for _, g := range a.Confidence.DataGaps {
			fmt.Fprintf(w, "  %s\n", g)
		}
	}
}
