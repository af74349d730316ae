package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/schemas"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// Format identifies an export artifact type
type Format string

// Supported export formats
const (
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// MIME types for the download layer
const (
	mimePDF  = "application/pdf"
	mimeJSON = "application/json"
	mimeText = "text/plain"
)

// Artifact is a rendered report ready for download
type Artifact struct {
	Format   Format
	FileName string
	MIME     string
	Data     []byte
}

// Render produces a download artifact for the given format. The file name is
// derived from the result's generation timestamp so repeated exports of the
// same result are identical.
func Render(r *types.FeedbackResult, format Format) (*Artifact, error) {
	artifact := &Artifact{
		Format:   format,
		FileName: FileName(format, r.GeneratedAt),
	}

	switch format {
	case FormatJSON:
		content, err := ToJSON(r)
		if err != nil {
			return nil, err
		}
		artifact.MIME = mimeJSON
		artifact.Data = []byte(content)
	case FormatText:
		artifact.MIME = mimeText
		artifact.Data = []byte(ToSummaryText(r))
	case FormatPDF:
		content, err := ToPDF(r)
		if err != nil {
			return nil, err
		}
		artifact.MIME = mimePDF
		artifact.Data = content
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	return artifact, nil
}

// ParseFormat maps a user-supplied format name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return FormatPDF, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", &UnsupportedFormatError{Format: name}
	}
}

// FileName builds the download file name for a format from the generation time
func FileName(format Format, generatedAt time.Time) string {
	ext := string(format)
	if format == FormatText {
		ext = "txt"
	}
	return fmt.Sprintf("resume_analysis_%s.%s", generatedAt.Format("20060102_150405"), ext)
}

// ToJSON serializes a FeedbackResult to indented JSON. The output is checked
// against the canonical feedback schema before it is handed out, and parsing
// it with ParseJSON reconstructs an equal result.
func ToJSON(r *types.FeedbackResult) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", &RenderError{Message: "failed to serialize result", Cause: err}
	}
	if err := schemas.ValidateFeedbackJSON(string(data)); err != nil {
		return "", &RenderError{Message: "serialized result failed schema validation", Cause: err}
	}
	return string(data), nil
}

// ParseJSON reconstructs a FeedbackResult from ToJSON output
func ParseJSON(content string) (*types.FeedbackResult, error) {
	var result types.FeedbackResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, &RenderError{Message: "failed to parse result JSON", Cause: err}
	}
	return &result, nil
}

// ToSummaryText renders the fixed copy-paste summary layout. The output
// depends only on the result, so exporting the same result twice yields
// identical strings.
func ToSummaryText(r *types.FeedbackResult) string {
	var sb strings.Builder

	sb.WriteString("=== RESUME ANALYSIS SUMMARY ===\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString(fmt.Sprintf("Overall Score: %d/100 (Grade: %s)\n", r.OverallScore, r.Grade))
	sb.WriteString(fmt.Sprintf("Content Score: %d/100\n", r.ContentScore))
	sb.WriteString(fmt.Sprintf("ATS Score: %d/100\n", r.ATSScore))

	if r.Summary != "" {
		sb.WriteString("\nSUMMARY:\n")
		sb.WriteString(r.Summary)
		sb.WriteString("\n")
	}

	writeNumberedSection(&sb, "STRENGTHS", r.Strengths)
	writeNumberedSection(&sb, "AREAS FOR IMPROVEMENT", r.Weaknesses)
	writeNumberedSection(&sb, "RECOMMENDATIONS", r.Recommendations)

	if len(r.MissingKeywords) > 0 {
		sb.WriteString("\nMISSING KEYWORDS:\n")
		sb.WriteString(strings.Join(r.MissingKeywords, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeNumberedSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}
}

// ToPDF renders the analysis report as a PDF document
func ToPDF(r *types.FeedbackResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Resume Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall Score: %d/100 (Grade: %s)", r.OverallScore, r.Grade), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Content Score: %d/100", r.ContentScore), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("ATS Score: %d/100", r.ATSScore), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if r.Summary != "" {
		writePDFHeading(pdf, "Summary")
		pdf.MultiCell(0, 5, r.Summary, "", "L", false)
		pdf.Ln(3)
	}

	writePDFBullets(pdf, "Strengths", r.Strengths)
	writePDFBullets(pdf, "Areas for Improvement", r.Weaknesses)
	writePDFBullets(pdf, "Recommendations", r.Recommendations)

	if len(r.MissingKeywords) > 0 {
		writePDFHeading(pdf, "Missing Keywords")
		pdf.MultiCell(0, 5, strings.Join(r.MissingKeywords, ", "), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to build PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

func writePDFHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func writePDFBullets(pdf *gofpdf.Fpdf, title string, items []string) {
	if len(items) == 0 {
		return
	}
	writePDFHeading(pdf, title)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}
	pdf.Ln(3)
}
