// Package types provides type definitions for structured data used throughout the resume-reviewer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExperienceLevel represents the candidate's career stage
type ExperienceLevel string

// Supported experience levels
const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// AnalysisOptions controls which parts of the review the provider is asked to produce
type AnalysisOptions struct {
	FocusAreas         []string `json:"focus_areas,omitempty"`         // e.g. ["Keywords & ATS", "Content Quality"]
	IncludeSuggestions bool     `json:"include_suggestions,omitempty"` // Ask for improvement recommendations
	GenerateKeywords   bool     `json:"generate_keywords,omitempty"`   // Ask for missing ATS keywords
	SectionAnalysis    bool     `json:"section_analysis,omitempty"`    // Ask for section-by-section notes
}

// AnalysisRequest is the canonical input for a single resume review.
// It is created per submission, consumed once by the provider layer, then discarded.
type AnalysisRequest struct {
	ResumeText      string          `json:"resume_text" validate:"required"`
	JobDescription  string          `json:"job_description,omitempty"`
	JobRole         string          `json:"job_role,omitempty"`
	Industry        string          `json:"industry,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level" validate:"required,oneof=entry mid senior executive"`
	Options         AnalysisOptions `json:"options"`
}
