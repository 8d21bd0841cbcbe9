package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/hirelens/screening-cli/internal/model"
)

func poolCandidate(name string, oi, tdb float64) model.CandidateAnalysis {
	return model.CandidateAnalysis{
		Candidate:  name,
		Seniority:  model.SenioritySenior,
		FinalScore: 70,
		Tier:       model.TierInterview,
		Confidence: model.ConfidenceReport{Overall: 0.6},
		Metrics: map[model.MetricCode]model.SubMetricScore{
			model.MetricOI:  {Code: model.MetricOI, Score: oi},
			model.MetricTDB: {Code: model.MetricTDB, Score: tdb},
		},
		CreatedAt: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportCSV(t *testing.T) {
	pool := []model.CandidateAnalysis{
		poolCandidate("Ben", 40, 50),
		poolCandidate("Ana", 80, 50),
	}
	pool[0].RedFlags = []model.RedFlag{
		{Description: "Employment gap of 9 months", Severity: model.SeverityMedium},
	}
	pool[1].Boosters = []string{"award: Dean's List (+5)"}

	path := filepath.Join(t.TempDir(), "pool.csv")
	require.NoError(t, ExportCSV(pool, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "Rank", header[0])
	assert.Equal(t, "Candidate", header[1])
	assert.Contains(t, header, "TDB")
	assert.Contains(t, header, "CF")
	assert.Len(t, header, 6+11+3)

	// Ana outranks Ben on Outcome & Impact.
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Ana", records[1][1])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "Ben", records[2][1])

	assert.Contains(t, records[1], "award: Dean's List (+5)")
	assert.Contains(t, records[2], "Employment gap of 9 months (medium)")
	assert.Equal(t, "2026-08-15", records[1][len(records[1])-1])
}

func TestExportCSV_EmptyPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, ExportCSV(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestExportXLSX(t *testing.T) {
	pool := []model.CandidateAnalysis{
		poolCandidate("Ben", 40, 50),
		poolCandidate("Ana", 80, 50),
	}

	path := filepath.Join(t.TempDir(), "pool.xlsx")
	require.NoError(t, ExportXLSX(pool, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := file.Sheet["Ranked Pool"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Rank", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Ana", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "Ben", sheet.Rows[2].Cells[1].String())
	assert.Equal(t, "50.0", sheet.Rows[1].Cells[6].String(), "TDB column follows the fixed fields")
	assert.Equal(t, "80.0", sheet.Rows[1].Cells[8].String(), "OI sits third in metric order")
}
