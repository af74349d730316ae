package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/config"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/server"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume analysis, session state, and report export.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by environment variables)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cfg.Port == 0 {
		cfg.Port = config.DefaultPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	providerCfg := cfg.ProviderConfig()
	if providerCfg.APIKey == "" {
		return fmt.Errorf("no API key configured for provider %q", providerCfg.Provider)
	}

	client, err := provider.New(context.Background(), &providerCfg)
	if err != nil {
		return fmt.Errorf("failed to create provider client: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv := server.New(server.Config{
		Port:       cfg.Port,
		SessionTTL: time.Duration(cfg.SessionTTLMins) * time.Minute,
		RateLimit:  ratelimit.LoadConfig(),
		Logger:     logger,
	}, client, cfg.Aggregator())

	return srv.Start()
}
