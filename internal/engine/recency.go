package engine

import "math"

// RecencyWeight returns the exponential time-decay weight for evidence that
// ended monthsAgo months in the past. Unknown or negative recency is treated
// as fully fresh (weight 1.0) — an explicit policy: the absence of a date
// must never penalize a claim.
func RecencyWeight(monthsAgo float64, tau float64) float64 {
	if monthsAgo < 0 || tau <= 0 {
		return 1.0
	}
	return math.Exp(-monthsAgo / tau)
}

// sigmoidScore maps an unbounded raw accumulated score onto [0,100] with
// diminishing returns: the first strong evidence units move the score far
// more than later ones, which flattens resumes that simply pile up claims.
func sigmoidScore(raw, mu, sigma float64) float64 {
	return 100 / (1 + math.Exp(-(raw-mu)/sigma))
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
