package engine

import (
	"sort"

	"github.com/hirelens/screening-cli/internal/model"
)

// Rank orders a candidate pool descending by the deterministic tiebreaker
// tuple (Outcome & Impact, Technical Depth, confidence, 100 − Stability &
// Risk). The sort is stable, so candidates identical on the full tuple keep
// their input order. The input slice is not modified.
func Rank(pool []model.CandidateAnalysis) []model.CandidateAnalysis {
	ranked := make([]model.CandidateAnalysis, len(pool))
	copy(ranked, pool)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]

		if oi1, oi2 := a.MetricScore(model.MetricOI), b.MetricScore(model.MetricOI); oi1 != oi2 {
			return oi1 > oi2
		}
		if td1, td2 := a.MetricScore(model.MetricTDB), b.MetricScore(model.MetricTDB); td1 != td2 {
			return td1 > td2
		}
		if a.Confidence.Overall != b.Confidence.Overall {
			return a.Confidence.Overall > b.Confidence.Overall
		}
		// Lower stability risk exposure ranks first.
		return 100-a.MetricScore(model.MetricSR) > 100-b.MetricScore(model.MetricSR)
	})
	return ranked
}
