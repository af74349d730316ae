package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFeedback = `{
	"overall_score": 85,
	"content_score": 88,
	"ats_score": 80,
	"grade": "B",
	"summary": "Solid resume.",
	"strengths": ["Clear structure"],
	"weaknesses": ["Thin skills section"],
	"recommendations": ["Add metrics"],
	"missing_keywords": ["kubernetes"],
	"section_analysis": {
		"experience": {"score": 90, "notes": "Strong."}
	},
	"provider": "gemini",
	"model": "gemini-2.5-flash",
	"generated_at": "2025-06-15T12:00:00Z"
}`

func TestValidateFeedbackJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		valid    bool
		validate func(t *testing.T, err error)
	}{
		{
			name:  "Valid full document",
			json:  validFeedback,
			valid: true,
		},
		{
			name: "Minimal required fields",
			json: `{
				"overall_score": 0,
				"content_score": 0,
				"ats_score": 0,
				"grade": "F",
				"strengths": [],
				"weaknesses": [],
				"recommendations": [],
				"generated_at": "2025-06-15T12:00:00Z"
			}`,
			valid: true,
		},
		{
			name: "Score out of range",
			json: `{
				"overall_score": 120,
				"content_score": 0,
				"ats_score": 0,
				"grade": "A",
				"strengths": [],
				"weaknesses": [],
				"recommendations": [],
				"generated_at": "2025-06-15T12:00:00Z"
			}`,
			valid: false,
			validate: func(t *testing.T, err error) {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				require.NotEmpty(t, ve.Errors)
				assert.Equal(t, "overall_score", ve.Errors[0].Field)
			},
		},
		{
			name: "Invalid grade letter",
			json: `{
				"overall_score": 85,
				"content_score": 85,
				"ats_score": 85,
				"grade": "E",
				"strengths": [],
				"weaknesses": [],
				"recommendations": [],
				"generated_at": "2025-06-15T12:00:00Z"
			}`,
			valid: false,
		},
		{
			name:  "Missing required fields",
			json:  `{"overall_score": 85}`,
			valid: false,
		},
		{
			name:  "Not an object",
			json:  `[1, 2, 3]`,
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeedbackJSON(tt.json)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
			}
			if tt.validate != nil {
				tt.validate(t, err)
			}
		})
	}
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "nonsense"}`, `{}`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
