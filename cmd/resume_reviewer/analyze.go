package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/config"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/export"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/extract"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/fetch"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/input"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/observability"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume and print the review",
	Long: `Reads a resume from a PDF, DOCX, or plain-text file (or stdin when no file
is given), submits it to the configured AI provider, and prints the scored
review. Use --export to also write the result to a file.

Configuration can be loaded from a JSON file using --config. Environment
variables and command-line flags override config file values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeProvider   string
	analyzeModel      string
	analyzeJobFile    string
	analyzeJobURL     string
	analyzeJobRole    string
	analyzeIndustry   string
	analyzeLevel      string
	analyzeFocus      []string
	analyzeExport     string
	analyzeOutputDir  string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeProvider, "provider", "p", "", "AI provider: gemini, openai, or anthropic")
	analyzeCmd.Flags().StringVarP(&analyzeModel, "model", "m", "", "Provider model override")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVar(&analyzeJobRole, "role", "", "Target job role")
	analyzeCmd.Flags().StringVar(&analyzeIndustry, "industry", "", "Target industry")
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Experience level: entry, mid, senior, or executive (default mid)")
	analyzeCmd.Flags().StringSliceVar(&analyzeFocus, "focus", nil, "Focus areas, e.g. \"Keywords & ATS\"")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "Also write the result to a file: pdf, json, or text")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", ".", "Directory for exported files")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = analyzeProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = analyzeModel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if analyzeJobFile != "" && analyzeJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive")
	}

	resumeText, err := readResume(args)
	if err != nil {
		return err
	}

	jobDescription, err := readJobDescription(ctx)
	if err != nil {
		return err
	}

	req, err := input.Normalize(resumeText, input.Metadata{
		JobDescription:  jobDescription,
		JobRole:         analyzeJobRole,
		Industry:        analyzeIndustry,
		ExperienceLevel: analyzeLevel,
		Options: types.AnalysisOptions{
			FocusAreas:         analyzeFocus,
			IncludeSuggestions: true,
			GenerateKeywords:   true,
			SectionAnalysis:    true,
		},
	})
	if err != nil {
		return err
	}

	providerCfg := cfg.ProviderConfig()
	client, err := provider.New(ctx, &providerCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	fmt.Fprintf(os.Stderr, "Analyzing resume with %s...\n", client.Name())

	raw, err := analyzeOnce(ctx, client, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	result, err := cfg.Aggregator().Aggregate(raw)
	if err != nil {
		return fmt.Errorf("the provider returned an unusable response: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintFeedback(result)

	if analyzeExport != "" {
		path, err := writeExport(result, analyzeExport, analyzeOutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported to %s\n", path)
	}

	return nil
}

// analyzeOnce calls the provider, retrying once with backoff when the failure
// is a timeout or rate limit.
func analyzeOnce(ctx context.Context, client provider.Client, req *types.AnalysisRequest) (*provider.Response, error) {
	raw, err := client.Analyze(ctx, req)
	if err == nil || !provider.Retryable(err) {
		return raw, err
	}

	fmt.Fprintln(os.Stderr, "Provider busy, retrying once...")
	select {
	case <-ctx.Done():
		return nil, err
	case <-time.After(2 * time.Second):
	}
	return client.Analyze(ctx, req)
}

// readResume loads resume text from the named file or stdin
func readResume(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, extract.MaxFileSize))
		if err != nil {
			return "", fmt.Errorf("failed to read resume from stdin: %w", err)
		}
		return string(data), nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	return extract.Text(extract.MIMEForFilename(path), data)
}

// readJobDescription resolves the optional job context from a file or URL
func readJobDescription(ctx context.Context) (string, error) {
	if analyzeJobFile != "" {
		data, err := os.ReadFile(analyzeJobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(data), nil
	}
	if analyzeJobURL != "" {
		return fetch.JobDescription(ctx, analyzeJobURL, nil)
	}
	return "", nil
}

// writeExport renders the result and writes it next to the output directory
func writeExport(result *types.FeedbackResult, formatName, dir string) (string, error) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return "", err
	}
	artifact, err := export.Render(result, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, artifact.FileName)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// loadMergedConfig layers the environment over an optional config file
func loadMergedConfig(path string) (*config.Config, error) {
	cfg := config.FromEnv()
	if path == "" {
		return cfg, nil
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	merged := cfg.MergeWithDefaults(*fileCfg)
	return &merged, nil
}
