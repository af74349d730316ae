package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testAggregator() *Aggregator {
	a := New()
	a.Clock = testClock
	return a
}

func response(body string) *provider.Response {
	return &provider.Response{Provider: "gemini", Model: "gemini-2.5-flash", Body: body}
}

func TestAggregate_WellFormedPayload(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 85,
		"content_score": 88,
		"ats_score": 80,
		"summary": "Strong resume with quantified achievements.",
		"strengths": ["Quantified impact", "Clear structure"],
		"weaknesses": ["Missing keywords"],
		"recommendations": ["Add a skills section"],
		"missing_keywords": ["kubernetes", "terraform"],
		"section_analysis": {
			"experience": {"score": 90, "notes": "Strong action verbs."},
			"education": {"score": 75, "notes": "Fine."}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 85, result.OverallScore)
	assert.Equal(t, 88, result.ContentScore)
	assert.Equal(t, 80, result.ATSScore)
	assert.Equal(t, types.GradeB, result.Grade)
	assert.Equal(t, "Strong resume with quantified achievements.", result.Summary)
	assert.Equal(t, []string{"Quantified impact", "Clear structure"}, result.Strengths)
	assert.Equal(t, []string{"Missing keywords"}, result.Weaknesses)
	assert.Equal(t, []string{"Add a skills section"}, result.Recommendations)
	assert.Equal(t, []string{"kubernetes", "terraform"}, result.MissingKeywords)
	require.Len(t, result.SectionAnalysis, 2)
	assert.Equal(t, types.SectionNote{Score: 90, Notes: "Strong action verbs."}, result.SectionAnalysis["experience"])
	assert.Empty(t, result.DegradationNotes)
	assert.Equal(t, testClock(), result.GeneratedAt)
	assert.Equal(t, "gemini", result.Provider)
}

func TestAggregate_MissingATSScoreDefaults(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 70,
		"content_score": 75,
		"strengths": ["ok"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultScore, result.ATSScore)
	assert.NotEmpty(t, result.DegradationNotes)
	assert.Contains(t, result.DegradationNotes[0], "ats score")
}

func TestAggregate_OverallComputedFromWeights(t *testing.T) {
	// 0.6*80 + 0.4*60 = 72 -> grade C
	result, err := testAggregator().Aggregate(response(`{
		"content_score": 80,
		"ats_score": 60
	}`))
	require.NoError(t, err)

	assert.Equal(t, 72, result.OverallScore)
	assert.Equal(t, types.GradeC, result.Grade)
	assert.Contains(t, result.DegradationNotes, "overall score computed from content and ats scores")
}

func TestAggregate_ScoresClampedToRange(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 150,
		"content_score": -12,
		"ats_score": 101.7
	}`))
	require.NoError(t, err)

	assert.Equal(t, 100, result.OverallScore)
	assert.Equal(t, 0, result.ContentScore)
	assert.Equal(t, 100, result.ATSScore)
	assert.Equal(t, types.GradeA, result.Grade)
}

func TestAggregate_NumericStringsAccepted(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": "92",
		"content_score": "88%",
		"ats_score": "not a number"
	}`))
	require.NoError(t, err)

	assert.Equal(t, 92, result.OverallScore)
	assert.Equal(t, 88, result.ContentScore)
	assert.Equal(t, DefaultScore, result.ATSScore)
}

func TestAggregate_ScalarListWrapped(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 65,
		"strengths": "Good formatting"
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Good formatting"}, result.Strengths)
	assert.Equal(t, []string{}, result.Weaknesses)
	assert.Equal(t, []string{}, result.Recommendations)
}

func TestAggregate_NotesNameTheMatchedAlias(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 65,
		"areas_for_improvement": "Too dense"
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Too dense"}, result.Weaknesses)
	assert.Contains(t, result.DegradationNotes,
		"areas_for_improvement: wrapped scalar value as single-element list")
}

func TestAggregate_MixedTypeListElements(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 65,
		"strengths": ["solid", 42, true, {"nested": "dropped"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"solid", "42", "true"}, result.Strengths)
	assert.NotEmpty(t, result.DegradationNotes)
}

func TestAggregate_NestedScoresObject(t *testing.T) {
	// Some providers nest numbers under a "scores" object
	result, err := testAggregator().Aggregate(response(`{
		"scores": {"overall": 81, "content_score": 85, "ats_score": 75},
		"strengths": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, 81, result.OverallScore)
	assert.Equal(t, 85, result.ContentScore)
	assert.Equal(t, 75, result.ATSScore)
}

func TestAggregate_SectionEntries(t *testing.T) {
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": 70,
		"section_analysis": {
			"experience": {"score": "82", "feedback": "Solid history."},
			"skills": "Needs more depth.",
			"broken": 17
		}
	}`))
	require.NoError(t, err)

	require.Len(t, result.SectionAnalysis, 2)
	assert.Equal(t, types.SectionNote{Score: 82, Notes: "Solid history."}, result.SectionAnalysis["experience"])
	assert.Equal(t, types.SectionNote{Notes: "Needs more depth."}, result.SectionAnalysis["skills"])
	assert.NotContains(t, result.SectionAnalysis, "broken")
}

func TestAggregate_MarkdownFencedBody(t *testing.T) {
	result, err := testAggregator().Aggregate(response("```json\n{\"overall_score\": 77}\n```"))
	require.NoError(t, err)
	assert.Equal(t, 77, result.OverallScore)
	assert.Equal(t, types.GradeC, result.Grade)
}

func TestAggregate_GradeDerivedNotTrusted(t *testing.T) {
	// A provider-supplied grade is ignored; grade is always derived from the
	// final overall score.
	result, err := testAggregator().Aggregate(response(`{"overall_score": 95, "grade": "F"}`))
	require.NoError(t, err)
	assert.Equal(t, types.GradeA, result.Grade)
}

func TestAggregate_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Empty body", ""},
		{"Whitespace body", "   \n  "},
		{"Not JSON", "I am sorry, I cannot review this resume."},
		{"JSON array", `[1, 2, 3]`},
		{"Empty object", `{}`},
		{"No recognized fields", `{"foo": "bar", "baz": 3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := testAggregator().Aggregate(response(tt.body))
			require.Error(t, err)
			assert.Nil(t, result)

			var unparseable *UnparseableError
			assert.ErrorAs(t, err, &unparseable)
		})
	}
}

func TestAggregate_NilResponse(t *testing.T) {
	_, err := testAggregator().Aggregate(nil)

	var unparseable *UnparseableError
	require.ErrorAs(t, err, &unparseable)
}

func TestAggregate_FreeTextScoreFallsBack(t *testing.T) {
	// Free text where a number was expected counts as missing, and the overall
	// fallback runs on the defaults.
	result, err := testAggregator().Aggregate(response(`{
		"overall_score": "excellent",
		"strengths": ["still usable"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, types.GradeF, result.Grade)
	assert.Equal(t, []string{"still usable"}, result.Strengths)
}

func TestAggregate_Deterministic(t *testing.T) {
	body := `{"content_score": 80, "ats_score": 60, "strengths": ["a"]}`
	first, err := testAggregator().Aggregate(response(body))
	require.NoError(t, err)
	second, err := testAggregator().Aggregate(response(body))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
