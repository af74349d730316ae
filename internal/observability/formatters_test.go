package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

func sampleFeedback() *types.FeedbackResult {
	return &types.FeedbackResult{
		OverallScore:    85,
		ContentScore:    88,
		ATSScore:        80,
		Grade:           types.GradeB,
		Summary:         "Strong resume with quantified achievements throughout.",
		Strengths:       []string{"Quantified impact", "Clear structure"},
		Weaknesses:      []string{"Missing keywords"},
		Recommendations: []string{"Add a skills section"},
		MissingKeywords: []string{"kubernetes", "terraform"},
		SectionAnalysis: map[string]types.SectionNote{
			"experience": {Score: 90, Notes: "Strong action verbs."},
			"education":  {Score: 75, Notes: "Fine."},
		},
		GeneratedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPrintFeedback(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFeedback(sampleFeedback())
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS SCORES")
	assert.Contains(t, output, "Overall:  85/100  (Grade: B)")
	assert.Contains(t, output, "Content:  88/100")
	assert.Contains(t, output, "ATS:      80/100")
	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "STRENGTHS")
	assert.Contains(t, output, "Quantified impact")
	assert.Contains(t, output, "AREAS FOR IMPROVEMENT")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "MISSING KEYWORDS")
	assert.Contains(t, output, "kubernetes, terraform")
	assert.Contains(t, output, "SECTION ANALYSIS")
	assert.Contains(t, output, "education: 75/100")
}

func TestPrintFeedback_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFeedback(nil)

	assert.Empty(t, buf.String())
}

func TestPrintFeedback_DegradationNotes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleFeedback()
	result.DegradationNotes = []string{"ats score missing or malformed; defaulted to 0"}

	p.PrintFeedback(result)

	assert.Contains(t, buf.String(), "ANALYSIS NOTES")
}

func TestPrintFeedback_SkipsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := sampleFeedback()
	result.Summary = ""
	result.Weaknesses = []string{}
	result.MissingKeywords = nil
	result.SectionAnalysis = nil

	p.PrintFeedback(result)
	output := buf.String()

	assert.NotContains(t, output, "SUMMARY")
	assert.NotContains(t, output, "AREAS FOR IMPROVEMENT")
	assert.NotContains(t, output, "MISSING KEYWORDS")
	assert.NotContains(t, output, "SECTION ANALYSIS")
	assert.Contains(t, output, "STRENGTHS")
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five", 9)
	assert.Equal(t, "one two\nthree\nfour five", wrapped)

	assert.Equal(t, "", wrapText("   ", 10))
}
