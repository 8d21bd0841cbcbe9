// Package report writes scored candidate pools to CSV and XLSX files for
// sharing with recruiters and hiring managers.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/hirelens/screening-cli/internal/engine"
	"github.com/hirelens/screening-cli/internal/model"
)

// rankedColumns defines the ordered export columns. The 11 sub-metric codes
// follow the fixed fields in canonical order.
var rankedColumns = buildColumns()

func buildColumns() []string {
	cols := []string{
		"Rank",
		"Candidate",
		"Seniority",
		"Tier",
		"Final Score",
		"Confidence",
	}
	for _, code := range model.MetricCodes {
		cols = append(cols, string(code))
	}
	return append(cols,
		"Red Flags",
		"Boosters",
		"Scored At",
	)
}

// ExportCSV ranks the pool and writes it as a CSV file.
func ExportCSV(pool []model.CandidateAnalysis, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "report: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(rankedColumns); err != nil {
		return eris.Wrap(err, "report: write header")
	}

	for i, a := range engine.Rank(pool) {
		if err := w.Write(buildRankedRow(i+1, &a)); err != nil {
			return eris.Wrapf(err, "report: write row for %s", a.Candidate)
		}
	}

	return eris.Wrap(w.Error(), "report: flush csv")
}

// ExportXLSX ranks the pool and writes it as a single-sheet XLSX workbook.
func ExportXLSX(pool []model.CandidateAnalysis, outputPath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Ranked Pool")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range rankedColumns {
		header.AddCell().SetString(col)
	}

	for i, a := range engine.Rank(pool) {
		row := sheet.AddRow()
		for _, cell := range buildRankedRow(i+1, &a) {
			row.AddCell().SetString(cell)
		}
	}

	return eris.Wrap(file.Save(outputPath), "report: save xlsx")
}

// buildRankedRow maps one analysis to an export row.
func buildRankedRow(rank int, a *model.CandidateAnalysis) []string {
	row := []string{
		fmt.Sprintf("%d", rank),
		a.Candidate,
		string(a.Seniority),
		string(a.Tier),
		formatScore(a.FinalScore),
		fmt.Sprintf("%.2f", a.Confidence.Overall),
	}
	for _, code := range model.MetricCodes {
		row = append(row, formatScore(a.MetricScore(code)))
	}
	return append(row,
		flagSummary(a.RedFlags),
		strings.Join(a.Boosters, "; "),
		a.CreatedAt.Format("2006-01-02"),
	)
}

// flagSummary renders red flags as "description (severity)" joined by
// semicolons, so a single spreadsheet cell stays scannable.
func flagSummary(flags []model.RedFlag) string {
	if len(flags) == 0 {
		return ""
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = fmt.Sprintf("%s (%s)", f.Description, f.Severity)
	}
	return strings.Join(parts, "; ")
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
