// Package input converts raw resume text and job-context metadata into a
// canonical AnalysisRequest.
package input

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// MaxResumeChars bounds resume input length to keep provider cost predictable.
const MaxResumeChars = 20000

// DefaultExperienceLevel is used when the caller leaves the level unset.
const DefaultExperienceLevel = types.ExperienceMid

var validate = validator.New()

// Metadata carries the optional job-context fields collected alongside the resume
type Metadata struct {
	JobDescription  string
	JobRole         string
	Industry        string
	ExperienceLevel string
	Options         types.AnalysisOptions
}

// Normalize builds a validated AnalysisRequest from raw text and metadata.
// It has no side effects: the same inputs always produce the same request.
func Normalize(rawText string, meta Metadata) (*types.AnalysisRequest, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, &EmptyResumeError{}
	}
	if len(text) > MaxResumeChars {
		return nil, &TooLongError{Length: len(text), Max: MaxResumeChars}
	}

	level := types.ExperienceLevel(strings.ToLower(strings.TrimSpace(meta.ExperienceLevel)))
	if level == "" {
		level = DefaultExperienceLevel
	}

	req := &types.AnalysisRequest{
		ResumeText:      text,
		JobDescription:  strings.TrimSpace(meta.JobDescription),
		JobRole:         strings.TrimSpace(meta.JobRole),
		Industry:        strings.TrimSpace(meta.Industry),
		ExperienceLevel: level,
		Options:         meta.Options,
	}

	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if ok := asValidationErrors(err, &errs); ok && len(errs) > 0 {
			return nil, &ValidationError{
				Field:   errs[0].Field(),
				Message: "failed " + errs[0].Tag() + " validation",
			}
		}
		return nil, &ValidationError{Field: "(request)", Message: err.Error()}
	}

	return req, nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	errs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = errs
	}
	return ok
}
