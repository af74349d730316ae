package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		rawText   string
		meta      Metadata
		wantError error
		validate  func(*testing.T, *types.AnalysisRequest)
	}{
		{
			name:    "Valid input with defaults",
			rawText: "  John Doe\nSoftware Engineer\n10 years of Go experience.  ",
			meta:    Metadata{},
			validate: func(t *testing.T, req *types.AnalysisRequest) {
				assert.Equal(t, "John Doe\nSoftware Engineer\n10 years of Go experience.", req.ResumeText)
				assert.Equal(t, types.ExperienceMid, req.ExperienceLevel)
				assert.Empty(t, req.JobRole)
			},
		},
		{
			name:    "Metadata is trimmed and level lowered",
			rawText: "resume body",
			meta: Metadata{
				JobRole:         " Backend Engineer ",
				Industry:        "Technology",
				ExperienceLevel: " Senior ",
			},
			validate: func(t *testing.T, req *types.AnalysisRequest) {
				assert.Equal(t, "Backend Engineer", req.JobRole)
				assert.Equal(t, types.ExperienceSenior, req.ExperienceLevel)
			},
		},
		{
			name:      "Empty resume rejected",
			rawText:   "   \n\t  ",
			wantError: &EmptyResumeError{},
		},
		{
			name:      "Oversized resume rejected",
			rawText:   strings.Repeat("x", MaxResumeChars+1),
			wantError: &TooLongError{},
		},
		{
			name:      "Unknown experience level rejected",
			rawText:   "resume body",
			meta:      Metadata{ExperienceLevel: "wizard"},
			wantError: &ValidationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Normalize(tt.rawText, tt.meta)
			if tt.wantError != nil {
				require.Error(t, err)
				assert.Nil(t, req)
				assert.IsType(t, tt.wantError, err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, req)
				if tt.validate != nil {
					tt.validate(t, req)
				}
			}
		})
	}
}

func TestNormalize_PreservesTextAtMaxLength(t *testing.T) {
	text := strings.Repeat("a", MaxResumeChars)
	req, err := Normalize(text, Metadata{})
	require.NoError(t, err)
	assert.Equal(t, text, req.ResumeText)
}

func TestNormalize_OptionsCarriedThrough(t *testing.T) {
	opts := types.AnalysisOptions{
		FocusAreas:         []string{"Keywords & ATS", "Content Quality"},
		IncludeSuggestions: true,
		GenerateKeywords:   true,
		SectionAnalysis:    true,
	}
	req, err := Normalize("resume body", Metadata{Options: opts})
	require.NoError(t, err)
	assert.Equal(t, opts, req.Options)
}
