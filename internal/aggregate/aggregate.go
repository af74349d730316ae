// Package aggregate converts a provider's raw, loosely-structured answer into
// the strict FeedbackResult schema. Provider output is untrusted: fields may
// be missing, mistyped, out of range, or free text where a number was
// expected. The contract is to degrade gracefully field by field and fail only
// when the payload has no usable structure at all.
package aggregate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// Field aliases observed across providers. Scores may also be nested under a
// "scores" object.
var (
	overallKeys  = []string{"overall_score", "overallScore", "overall", "score"}
	contentKeys  = []string{"content_score", "contentScore", "content", "content_quality", "content_relevance"}
	atsKeys      = []string{"ats_score", "atsScore", "ats", "ats_compatibility", "keyword_optimization"}
	summaryKeys  = []string{"summary", "overall_assessment", "executive_summary"}
	keywordKeys  = []string{"missing_keywords", "missingKeywords"}
	sectionKeys  = []string{"section_analysis", "section_feedback", "sections"}
	strengthKeys = []string{"strengths"}
	weaknessKeys = []string{"weaknesses", "areas_for_improvement"}
	adviceKeys   = []string{"recommendations", "suggestions"}
)

// Aggregator holds the fallback weights and clock used during aggregation.
// The zero value is not usable; call New.
type Aggregator struct {
	ContentWeight float64
	ATSWeight     float64
	Clock         func() time.Time
}

// New returns an Aggregator with the documented default weights
func New() *Aggregator {
	return &Aggregator{
		ContentWeight: DefaultContentWeight,
		ATSWeight:     DefaultATSWeight,
		Clock:         time.Now,
	}
}

// Aggregate runs the default Aggregator on a provider response
func Aggregate(raw *provider.Response) (*types.FeedbackResult, error) {
	return New().Aggregate(raw)
}

// Aggregate parses and normalizes a provider response into a FeedbackResult.
// It never fails on malformed input short of a payload with no recognizable
// structure; every defaulted field is recorded in DegradationNotes.
func (a *Aggregator) Aggregate(raw *provider.Response) (*types.FeedbackResult, error) {
	if raw == nil || strings.TrimSpace(raw.Body) == "" {
		return nil, &UnparseableError{Message: "empty provider payload"}
	}

	body := provider.CleanJSONBlock(raw.Body)
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, &UnparseableError{Message: "payload is not a JSON object", Cause: err}
	}
	if len(payload) == 0 {
		return nil, &UnparseableError{Message: "payload has no fields"}
	}

	p := &decoder{payload: payload}

	result := &types.FeedbackResult{
		Provider: raw.Provider,
		Model:    raw.Model,
	}

	content, ok := p.score(contentKeys)
	if !ok {
		content = DefaultScore
		p.note("content score missing or malformed; defaulted to %d", DefaultScore)
	}
	result.ContentScore = content

	ats, ok := p.score(atsKeys)
	if !ok {
		ats = DefaultScore
		p.note("ats score missing or malformed; defaulted to %d (could not assess)", DefaultScore)
	}
	result.ATSScore = ats

	overall, ok := p.score(overallKeys)
	if !ok {
		overall = weightedOverall(content, ats, a.ContentWeight, a.ATSWeight)
		p.note("overall score computed from content and ats scores")
	}
	result.OverallScore = overall
	result.Grade = GradeForScore(overall)

	result.Summary, _ = p.text(summaryKeys)
	result.Strengths = p.list(strengthKeys)
	result.Weaknesses = p.list(weaknessKeys)
	result.Recommendations = p.list(adviceKeys)
	if keywords := p.list(keywordKeys); len(keywords) > 0 {
		result.MissingKeywords = keywords
	}
	result.SectionAnalysis = p.sections(sectionKeys)

	if p.recognized == 0 {
		return nil, &UnparseableError{Message: "payload contains none of the expected fields"}
	}

	result.DegradationNotes = p.notes
	result.GeneratedAt = a.Clock().UTC()
	return result, nil
}

// decoder walks the untrusted payload, tracking how many expected fields it
// actually found and which ones had to be defaulted.
type decoder struct {
	payload    map[string]any
	recognized int
	notes      []string
}

func (d *decoder) note(format string, args ...any) {
	d.notes = append(d.notes, fmt.Sprintf(format, args...))
}

// lookup finds the first alias present at the top level or nested under a
// "scores" object, reporting which alias matched.
func (d *decoder) lookup(keys []string) (any, string, bool) {
	for _, key := range keys {
		if v, ok := d.payload[key]; ok {
			return v, key, true
		}
	}
	if nested, ok := d.payload["scores"].(map[string]any); ok {
		for _, key := range keys {
			if v, ok := nested[key]; ok {
				return v, key, true
			}
		}
	}
	return nil, "", false
}

// score extracts a numeric score, accepting numbers or numeric strings,
// clamped to [0,100]. Returns false if absent or unparseable.
func (d *decoder) score(keys []string) (int, bool) {
	v, _, ok := d.lookup(keys)
	if !ok {
		return 0, false
	}
	raw, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	d.recognized++
	return clampScore(raw), true
}

// text extracts a non-empty string field
func (d *decoder) text(keys []string) (string, bool) {
	v, _, ok := d.lookup(keys)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	d.recognized++
	return strings.TrimSpace(s), true
}

// list extracts an ordered string list. Absent fields become an empty list; a
// single scalar is wrapped as a one-element list; non-string elements are
// stringified and nested structures dropped with a note.
func (d *decoder) list(keys []string) []string {
	v, matched, ok := d.lookup(keys)
	if !ok {
		return []string{}
	}

	switch value := v.(type) {
	case []any:
		d.recognized++
		items := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := toItemString(item); ok {
				items = append(items, s)
			} else {
				d.note("%s: dropped non-scalar list element", matched)
			}
		}
		return items
	case string, float64, bool, json.Number:
		d.recognized++
		s, _ := toItemString(value)
		d.note("%s: wrapped scalar value as single-element list", matched)
		return []string{s}
	default:
		d.note("%s: unexpected type; defaulted to empty list", matched)
		return []string{}
	}
}

// sections extracts the per-section analysis map. Each entry may be an object
// with score/notes or a bare string; anything else is dropped with a note.
func (d *decoder) sections(keys []string) map[string]types.SectionNote {
	v, matched, ok := d.lookup(keys)
	if !ok {
		return nil
	}

	raw, ok := v.(map[string]any)
	if !ok {
		d.note("%s: unexpected type; section analysis dropped", matched)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	d.recognized++

	sections := make(map[string]types.SectionNote, len(raw))
	for name, entry := range raw {
		switch value := entry.(type) {
		case map[string]any:
			note := types.SectionNote{}
			if n, ok := toNumber(value["score"]); ok {
				note.Score = clampScore(n)
			} else {
				d.note("section %q: score missing or malformed; defaulted to %d", name, DefaultScore)
			}
			if s, ok := value["notes"].(string); ok {
				note.Notes = s
			} else if s, ok := value["feedback"].(string); ok {
				note.Notes = s
			}
			sections[name] = note
		case string:
			sections[name] = types.SectionNote{Notes: value}
			d.note("section %q: score missing; defaulted to %d", name, DefaultScore)
		default:
			d.note("section %q: unexpected type; dropped", name)
		}
	}

	if len(sections) == 0 {
		return nil
	}
	return sections
}

// toNumber coerces a JSON value to a float64 where sensible. Numeric strings
// such as "85" or "85%" are accepted; booleans and structures are not.
func toNumber(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "%"))
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toItemString renders a scalar list element as a string
func toItemString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case json.Number:
		return value.String(), true
	case bool:
		return strconv.FormatBool(value), true
	default:
		return "", false
	}
}
