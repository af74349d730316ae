package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

func TestGradeForScore_Thresholds(t *testing.T) {
	tests := []struct {
		score int
		want  types.Grade
	}{
		{100, types.GradeA},
		{90, types.GradeA},
		{89, types.GradeB},
		{80, types.GradeB},
		{79, types.GradeC},
		{70, types.GradeC},
		{69, types.GradeD},
		{60, types.GradeD},
		{59, types.GradeF},
		{0, types.GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeForScore(tt.score), "score %d", tt.score)
	}
}

func TestGradeForScore_Monotonic(t *testing.T) {
	rank := map[types.Grade]int{
		types.GradeF: 0, types.GradeD: 1, types.GradeC: 2, types.GradeB: 3, types.GradeA: 4,
	}
	prev := rank[GradeForScore(0)]
	for score := 1; score <= 100; score++ {
		current := rank[GradeForScore(score)]
		assert.GreaterOrEqual(t, current, prev, "grade regressed at score %d", score)
		prev = current
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{72.0, 72},
		{71.6, 72},
		{71.4, 71},
		{-5, 0},
		{150, 100},
		{0, 0},
		{100, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampScore(tt.raw), "raw %v", tt.raw)
	}
}

func TestWeightedOverall(t *testing.T) {
	// The documented fallback: 0.6*80 + 0.4*60 = 72
	assert.Equal(t, 72, weightedOverall(80, 60, DefaultContentWeight, DefaultATSWeight))
	assert.Equal(t, 0, weightedOverall(0, 0, DefaultContentWeight, DefaultATSWeight))
	assert.Equal(t, 100, weightedOverall(100, 100, DefaultContentWeight, DefaultATSWeight))

	// Non-normalized weights are scaled by their sum
	assert.Equal(t, 72, weightedOverall(80, 60, 3, 2))

	// Degenerate weights fall back to the defaults
	assert.Equal(t, 72, weightedOverall(80, 60, 0, 0))
}
