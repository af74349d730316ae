package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/aggregate"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/fetch"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/server/ratelimit"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/session"
)

// DefaultMaxConcurrentAnalyses caps provider calls in flight across all sessions
const DefaultMaxConcurrentAnalyses = 4

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	client      provider.Client
	aggregator  *aggregate.Aggregator
	sessions    *session.Manager
	rateLimiter *ratelimit.Limiter
	sem         *semaphore.Weighted
	inFlight    sync.Map // session ID -> struct{}, one analysis per session
	fetchOpts   *fetch.Options
	logger      *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port                  int
	SessionTTL            time.Duration
	MaxConcurrentAnalyses int64
	RateLimit             *ratelimit.Config
	Logger                *slog.Logger
}

// New creates a new server instance around a provider client
func New(cfg Config, client provider.Client, aggregator *aggregate.Aggregator) *Server {
	if aggregator == nil {
		aggregator = aggregate.New()
	}
	maxConcurrent := cfg.MaxConcurrentAnalyses
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentAnalyses
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		client:      client,
		aggregator:  aggregator,
		sessions:    session.NewManager(cfg.SessionTTL),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		sem:         semaphore.NewWeighted(maxConcurrent),
		fetchOpts:   fetch.DefaultOptions(),
		logger:      logger.With("component", "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyses", s.handleCreateAnalysis)
	mux.HandleFunc("GET /api/v1/analyses/current", s.handleCurrentAnalysis)
	mux.HandleFunc("DELETE /api/v1/analyses/current", s.handleClearAnalysis)
	mux.HandleFunc("GET /api/v1/analyses/current/export/{format}", s.handleExport)
	mux.HandleFunc("DELETE /api/v1/sessions/current", s.handleEndSession)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // Long enough for a provider call plus retry
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware chain for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	defer cancelJanitor()
	go s.sessions.Janitor(janitorCtx)

	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if err := s.client.Close(); err != nil {
		s.logger.Warn("provider client close failed", "error", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client for rate limiting by IP address
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded", "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
