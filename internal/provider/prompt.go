package provider

import (
	"fmt"
	"strings"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/prompts"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// SystemPrompt returns the system message shared by all provider variants
func SystemPrompt() string {
	return prompts.MustGet("analysis.json", "review-system")
}

// UserPrompt renders the review prompt for a request
func UserPrompt(req *types.AnalysisRequest) string {
	template := prompts.MustGet("analysis.json", "review-resume")
	return prompts.Format(template, map[string]string{
		"RoleContext":      roleContext(req),
		"FocusInstruction": focusInstruction(req.Options),
		"ResumeText":       req.ResumeText,
		"JobContext":       jobContext(req),
	})
}

func roleContext(req *types.AnalysisRequest) string {
	var parts []string
	if req.JobRole != "" {
		parts = append(parts, fmt.Sprintf("targeting the role of %s", req.JobRole))
	}
	if req.Industry != "" {
		parts = append(parts, fmt.Sprintf("in the %s industry", req.Industry))
	}
	parts = append(parts, fmt.Sprintf("at %s level", req.ExperienceLevel))
	return " " + strings.Join(parts, " ")
}

func focusInstruction(opts types.AnalysisOptions) string {
	var sb strings.Builder
	if len(opts.FocusAreas) > 0 {
		sb.WriteString(fmt.Sprintf("- Focus especially on: %s.\n", strings.Join(opts.FocusAreas, ", ")))
	}
	if !opts.GenerateKeywords {
		sb.WriteString("- Return an empty missing_keywords array.\n")
	}
	if !opts.SectionAnalysis {
		sb.WriteString("- Return an empty section_analysis object.\n")
	}
	if !opts.IncludeSuggestions {
		sb.WriteString("- Return an empty recommendations array.\n")
	}
	return sb.String()
}

func jobContext(req *types.AnalysisRequest) string {
	if req.JobDescription == "" {
		return ""
	}
	return fmt.Sprintf("\nJob description:\n\"\"\"\n%s\n\"\"\"\n", req.JobDescription)
}
