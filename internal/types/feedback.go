package types

import "time"

// Grade is a letter summary of the overall numeric score
type Grade string

// Grade values, highest to lowest
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// SectionNote holds per-section feedback from the provider
type SectionNote struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

// FeedbackResult is the canonical review output. All scores are clamped to
// [0,100] and Grade is derived from OverallScore; list fields preserve the
// provider's ordering. DegradationNotes records every field that had to be
// defaulted because the provider payload was missing or malformed.
type FeedbackResult struct {
	OverallScore     int                    `json:"overall_score"`
	ContentScore     int                    `json:"content_score"`
	ATSScore         int                    `json:"ats_score"`
	Grade            Grade                  `json:"grade"`
	Summary          string                 `json:"summary,omitempty"`
	Strengths        []string               `json:"strengths"`
	Weaknesses       []string               `json:"weaknesses"`
	Recommendations  []string               `json:"recommendations"`
	MissingKeywords  []string               `json:"missing_keywords,omitempty"`
	SectionAnalysis  map[string]SectionNote `json:"section_analysis,omitempty"`
	DegradationNotes []string               `json:"degradation_notes,omitempty"`
	Provider         string                 `json:"provider,omitempty"`
	Model            string                 `json:"model,omitempty"`
	GeneratedAt      time.Time              `json:"generated_at"`
}
