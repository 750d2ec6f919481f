package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	analyzer    Analyzer
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Password  *config.PasswordConfig
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	Logger    *zap.Logger
}

// New creates a server over store and analyzer.
func New(cfg Config, store Store, analyzer Analyzer) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if cfg.Password == nil || cfg.JWT == nil {
		return nil, fmt.Errorf("password and JWT configuration are required")
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       store,
		analyzer:    analyzer,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		jwtService:  NewJWTService(cfg.JWT),
		logger:      logger.OrNop(cfg.Logger),
	}
	s.authHandler = NewAuthHandler(NewUserService(store, cfg.Password), s.jwtService, s.logger)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.Handle("GET /api/auth/me", protected(s.authHandler.Me))

	// Resume documents
	mux.Handle("POST /api/resumes", protected(s.handleCreateResume))
	mux.Handle("GET /api/resumes/{id}", protected(s.handleGetResume))
	mux.Handle("PUT /api/resumes/{id}", protected(s.handleUpdateResume))
	mux.Handle("DELETE /api/resumes/{id}", protected(s.handleDeleteResume))
	mux.Handle("GET /api/resumes/{id}/preview", protected(s.handlePreviewResume))
	mux.Handle("GET /api/resumes/{id}/analysis", protected(s.handleLatestAnalysis))
	mux.Handle("GET /api/resumes/{id}/matches", protected(s.handleListMatches))
	mux.Handle("GET /api/users/{id}/resumes", protected(s.handleListResumes))

	// Analysis
	mux.Handle("POST /api/resume/analyze", protected(s.handleAnalyze))
	mux.Handle("POST /api/resume/match", protected(s.handleMatch))
	mux.Handle("POST /api/upload/resume", protected(s.handleUpload))

	s.handler = s.withLogging(s.withRateLimit(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM-backed requests
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth reports ok when the store answers a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.logger, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, s.logger, status, message)
}

// fail maps err to a status. Server-side failures are logged and not echoed to the client.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("op", op), zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal server error")
			return
		}
	}
	s.errorResponse(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, status int, message string) {
	writeJSON(w, log, status, map[string]string{"error": message})
}

// extractClientID uses the IP from RemoteAddr. Forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate limit exceeded, please try again later",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := max(1, int(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
