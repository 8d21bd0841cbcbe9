package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/hirelens/screening-cli/internal/engine"
	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored candidates by the deterministic tiebreaker",
	Long: `Load stored analyses and print them in rank order.

Ordering is the tiebreaker tuple: Outcome & Impact, then Technical Depth,
then confidence, then lower stability risk. Filters narrow the pool before
ranking.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		seniority, _ := cmd.Flags().GetString("seniority")
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		limit, _ := cmd.Flags().GetInt("limit")

		pool, err := st.ListAnalyses(ctx, store.AnalysisFilter{
			Seniority: model.Seniority(seniority),
			MinScore:  minScore,
			Limit:     limit,
		})
		if err != nil {
			return eris.Wrap(err, "rank: list analyses")
		}
		if len(pool) == 0 {
			fmt.Fprintln(os.Stderr, "No analyses found.")
			return nil
		}

		printRanked(os.Stdout, engine.Rank(pool))
		return nil
	},
}

func init() {
	f := rankCmd.Flags()
	f.String("seniority", "", "filter by seniority profile")
	f.Float64("min-score", 0, "minimum final score")
	f.Int("limit", 100, "max candidates to rank")

	rootCmd.AddCommand(rankCmd)
}

func printRanked(w io.Writer, ranked []model.CandidateAnalysis) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tSENIORITY\tSCORE\tTIER\tCONF\tOI\tTDB\tFLAGS")
	for i, a := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\t%.2f\t%.1f\t%.1f\t%d\n",
			i+1, a.Candidate, a.Seniority, a.FinalScore, a.Tier,
			a.Confidence.Overall,
			a.MetricScore(model.MetricOI), a.MetricScore(model.MetricTDB),
			len(a.RedFlags),
		)
	}
	tw.Flush()
}
