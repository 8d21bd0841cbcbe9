package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedNow pins the engine clock for deterministic recency and consistency
// checks across the package's tests.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestRecencyWeight(t *testing.T) {
	assert.Equal(t, 1.0, RecencyWeight(0, 36), "fresh evidence carries full weight")
	assert.Equal(t, 1.0, RecencyWeight(-12, 36), "future/unknown dates are treated as fresh")

	// Strictly decreasing in months.
	prev := RecencyWeight(0, 36)
	for months := 1.0; months <= 120; months++ {
		w := RecencyWeight(months, 36)
		assert.Less(t, w, prev, "weight must strictly decrease at %v months", months)
		assert.Greater(t, w, 0.0)
		prev = w
	}

	// The cert time constant decays faster than the skill one.
	assert.Less(t, RecencyWeight(24, 24), RecencyWeight(24, 36))

	// Known value: one time constant elapsed is 1/e.
	assert.InDelta(t, 0.3679, RecencyWeight(36, 36), 0.0001)
}

func TestSigmoidScore(t *testing.T) {
	// Fixed point at the median.
	assert.InDelta(t, 50.0, sigmoidScore(50, 50, 15), 1e-9)

	// Monotonically increasing, bounded by (0, 100).
	prev := sigmoidScore(-100, 50, 15)
	for raw := -99.0; raw <= 300; raw++ {
		s := sigmoidScore(raw, 50, 15)
		assert.Greater(t, s, prev)
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, 100.0)
		prev = s
	}

	// Diminishing returns: the step from 0→25 raw is worth more than the
	// step from 100→125 raw.
	lowGain := sigmoidScore(25, 50, 15) - sigmoidScore(0, 50, 15)
	highGain := sigmoidScore(125, 50, 15) - sigmoidScore(100, 50, 15)
	assert.Greater(t, lowGain, highGain)
}
