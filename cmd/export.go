package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirelens/screening-cli/internal/model"
	"github.com/hirelens/screening-cli/internal/report"
	"github.com/hirelens/screening-cli/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ranked candidate pool to CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		seniority, _ := cmd.Flags().GetString("seniority")
		tier, _ := cmd.Flags().GetString("tier")
		minScore, _ := cmd.Flags().GetFloat64("min-score")
		limit, _ := cmd.Flags().GetInt("limit")

		if format != "csv" && format != "xlsx" {
			return eris.Errorf("export: --format must be csv or xlsx (got %q)", format)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		pool, err := st.ListAnalyses(ctx, store.AnalysisFilter{
			Seniority: model.Seniority(seniority),
			Tier:      model.Tier(tier),
			MinScore:  minScore,
			Limit:     limit,
		})
		if err != nil {
			return eris.Wrap(err, "export: list analyses")
		}

		switch format {
		case "csv":
			err = report.ExportCSV(pool, output)
		case "xlsx":
			err = report.ExportXLSX(pool, output)
		}
		if err != nil {
			return err
		}

		zap.L().Info("pool exported",
			zap.Int("candidates", len(pool)),
			zap.String("format", format),
			zap.String("output", output),
		)
		fmt.Printf("Exported %d candidates to %s\n", len(pool), output)
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.String("format", "csv", "output format: csv or xlsx")
	f.String("output", "pool.csv", "output file path")
	f.String("seniority", "", "filter by seniority profile")
	f.String("tier", "", "filter by tier")
	f.Float64("min-score", 0, "minimum final score")
	f.Int("limit", 1000, "max candidates to export")

	rootCmd.AddCommand(exportCmd)
}
