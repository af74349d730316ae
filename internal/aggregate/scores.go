package aggregate

import (
	"math"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// Default weights for the overall-score fallback when the provider omits an
// overall score. Whole-number output only; no fabricated precision.
const (
	DefaultContentWeight = 0.6
	DefaultATSWeight     = 0.4
)

// DefaultScore substitutes a missing or unparseable score field and means
// "could not assess".
const DefaultScore = 0

// Grade thresholds on the overall score
const (
	gradeAMin = 90
	gradeBMin = 80
	gradeCMin = 70
	gradeDMin = 60
)

// clampScore rounds a raw numeric score and clamps it to [0,100]
func clampScore(raw float64) int {
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// GradeForScore derives the letter grade from an overall score. It is a pure,
// monotonic function with fixed thresholds.
func GradeForScore(overall int) types.Grade {
	switch {
	case overall >= gradeAMin:
		return types.GradeA
	case overall >= gradeBMin:
		return types.GradeB
	case overall >= gradeCMin:
		return types.GradeC
	case overall >= gradeDMin:
		return types.GradeD
	default:
		return types.GradeF
	}
}

// weightedOverall combines content and ATS scores into a whole-number overall
// score using the given weights.
func weightedOverall(content, ats int, contentWeight, atsWeight float64) int {
	total := contentWeight + atsWeight
	if total <= 0 {
		contentWeight, atsWeight = DefaultContentWeight, DefaultATSWeight
		total = contentWeight + atsWeight
	}
	raw := (contentWeight*float64(content) + atsWeight*float64(ats)) / total
	return clampScore(raw)
}
