// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the terminal
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScores outputs the headline scores and grade
func (p *Printer) PrintScores(result *types.FeedbackResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %d/100  (Grade: %s)\n", result.OverallScore, result.Grade))
	sb.WriteString(fmt.Sprintf("Content:  %d/100\n", result.ContentScore))
	sb.WriteString(fmt.Sprintf("ATS:      %d/100", result.ATSScore))

	p.printBox("ANALYSIS SCORES", sb.String())
}

// PrintFeedback outputs the full review: scores, summary, and the strength,
// weakness, and recommendation lists.
func (p *Printer) PrintFeedback(result *types.FeedbackResult) {
	if result == nil {
		return
	}

	p.PrintScores(result)

	if result.Summary != "" {
		p.printBox("SUMMARY", wrapText(result.Summary, boxWidth-4))
	}

	p.printList("STRENGTHS", result.Strengths)
	p.printList("AREAS FOR IMPROVEMENT", result.Weaknesses)
	p.printList("RECOMMENDATIONS", result.Recommendations)

	if len(result.MissingKeywords) > 0 {
		keywords := strings.Join(result.MissingKeywords, ", ")
		p.printBox("MISSING KEYWORDS", wrapText(keywords, boxWidth-4))
	}

	p.printSections(result.SectionAnalysis)

	if len(result.DegradationNotes) > 0 {
		p.printList("ANALYSIS NOTES", result.DegradationNotes)
	}
}

func (p *Printer) printList(title string, items []string) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		if len(item) > 50 {
			item = item[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s", item))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(items)-maxItemsToShow))
	}

	p.printBox(title, sb.String())
}

func (p *Printer) printSections(sections map[string]types.SectionNote) {
	if len(sections) == 0 {
		return
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		note := sections[name]
		sb.WriteString(fmt.Sprintf("%s: %d/100\n", name, note.Score))
		if note.Notes != "" {
			text := note.Notes
			if len(text) > 50 {
				text = text[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s", text))
		}
		if i < len(names)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SECTION ANALYSIS", sb.String())
}

// wrapText breaks text into lines no longer than width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
