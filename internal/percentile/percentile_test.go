package percentile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Boundaries(t *testing.T) {
	ladder := Ladder{0, 10, 20, 30}

	assert.Equal(t, 0.0, Score(0, ladder))
	assert.Equal(t, 0.0, Score(-5, ladder))
	assert.Equal(t, 100.0, Score(30, ladder))
	assert.Equal(t, 100.0, Score(1000, ladder))
}

func TestScore_InteriorAnchor(t *testing.T) {
	ladder := Ladder{0, 10, 20, 30}

	// A value exactly at an interior anchor returns the anchor's own
	// percentile position.
	assert.InDelta(t, 33.33, Score(10, ladder), 0.01)
	assert.InDelta(t, 66.67, Score(20, ladder), 0.01)
}

func TestScore_Interpolation(t *testing.T) {
	ladder := Ladder{0, 10, 20, 30}

	// Midway between the first two anchors sits midway between their
	// percentile positions.
	assert.InDelta(t, 16.67, Score(5, ladder), 0.01)
	assert.InDelta(t, 50.0, Score(15, ladder), 0.01)
}

func TestScore_Monotonic(t *testing.T) {
	ladder := Ladder{-10, -5, -2, 0, 2, 5, 10, 20}

	values := []float64{-50, -10, -7.3, -2, -0.1, 0, 0.1, 1.9, 2, 4.99, 9, 19.99, 20, 100}
	prev := -1.0
	for _, v := range values {
		got := Score(v, ladder)
		assert.GreaterOrEqual(t, got, prev, "percentile must be monotonic at %v", v)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func TestScore_UnsortedLadder(t *testing.T) {
	// Ladders are sorted defensively before use.
	assert.InDelta(t, 33.33, Score(10, Ladder{30, 0, 20, 10}), 0.01)
}

func TestScore_DegenerateLadder(t *testing.T) {
	assert.Equal(t, 50.0, Score(5, Ladder{}))
	assert.Equal(t, 50.0, Score(5, Ladder{1}))
}

func TestInverse(t *testing.T) {
	ladder := Ladder{0, 10, 20, 30}

	assert.Equal(t, 100.0, Inverse(0, ladder))
	assert.Equal(t, 0.0, Inverse(30, ladder))
	assert.InDelta(t, 66.67, Inverse(10, ladder), 0.01)
}
