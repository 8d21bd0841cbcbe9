package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/store"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Inspect stored candidate analyses",
	Long:  "Commands for listing, viewing, and deleting stored analyses.",
}

// -- candidates list --

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses",
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

		candidate, _ := cmd.Flags().GetString("candidate")
		tier, _ := cmd.Flags().GetString("tier")
		limit, _ := cmd.Flags().GetInt("limit")

		analyses, err := st.ListAnalyses(ctx, store.AnalysisFilter{
			Candidate: candidate,
			Tier:      model.Tier(tier),
			Limit:     limit,
		})
		if err != nil {
			return eris.Wrap(err, "candidates list")
		}

		if len(analyses) == 0 {
			fmt.Fprintln(os.Stderr, "No analyses found.")
			return nil
		}

		formatCandidatesList(os.Stdout, analyses)
		return nil
	},
}

// -- candidates show --

var candidatesShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show full details of an analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		analysis, err := st.GetAnalysis(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "candidates show")
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(analysis), "candidates show: encode")
		}
		printAnalysis(os.Stdout, analysis)
		return nil
	},
}

// -- candidates delete --

var candidatesDeleteCmd = &cobra.Command{
	Use:   "delete <analysis-id>",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if err := st.DeleteAnalysis(ctx, args[0]); err != nil {
			return eris.Wrap(err, "candidates delete")
		}
		fmt.Printf("Deleted analysis %s\n", args[0])
		return nil
	},
}

func init() {
	candidatesListCmd.Flags().String("candidate", "", "filter by candidate name")
	candidatesListCmd.Flags().String("tier", "", "filter by tier")
	candidatesListCmd.Flags().Int("limit", 100, "max analyses to list")
	candidatesShowCmd.Flags().Bool("json", false, "print the full analysis as JSON")

	candidatesCmd.AddCommand(candidatesListCmd, candidatesShowCmd, candidatesDeleteCmd)
	rootCmd.AddCommand(candidatesCmd)
}

func formatCandidatesList(w io.Writer, analyses []model.CandidateAnalysis) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCANDIDATE\tSENIORITY\tSCORE\tTIER\tCONF\tSCORED")
	for _, a := range analyses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%.2f\t%s\n",
			shortID(a.ID), a.Candidate, a.Seniority, a.FinalScore, a.Tier,
			a.Confidence.Overall, a.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
