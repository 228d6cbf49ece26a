package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/metrics"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	resumes     *ResumeService
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	corsOrigin  string
	logger      *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port       int
	CORSOrigin string
}

// New creates a new server instance
func New(cfg Config, resumes *ResumeService, jwtService *JWTService, limiter *ratelimit.Limiter, logger *slog.Logger) *Server {
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	s := &Server{
		resumes:     resumes,
		jwtService:  jwtService,
		rateLimiter: limiter,
		corsOrigin:  cfg.CORSOrigin,
		logger:      logger.With("system", "http"),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with logging, CORS and metrics applied
func (s *Server) Handler() http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	optional := middleware.OptionalAuth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	// Owner endpoints
	mux.Handle("GET /resumes", auth(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("POST /resumes", auth(http.HandlerFunc(s.handleCreateResume)))
	mux.Handle("POST /resumes/import", auth(http.HandlerFunc(s.handleImportResume)))
	mux.Handle("GET /resumes/tags", auth(http.HandlerFunc(s.handleListTags)))
	mux.Handle("GET /resumes/{id}", auth(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("PATCH /resumes/{id}", auth(http.HandlerFunc(s.handleUpdateResume)))
	mux.Handle("DELETE /resumes/{id}", auth(http.HandlerFunc(s.handleDeleteResume)))
	mux.Handle("POST /resumes/{id}/duplicate", auth(http.HandlerFunc(s.handleDuplicateResume)))
	mux.Handle("PUT /resumes/{id}/lock", auth(http.HandlerFunc(s.handleSetLocked)))
	mux.Handle("PUT /resumes/{id}/password", auth(http.HandlerFunc(s.handleSetPassword)))
	mux.Handle("DELETE /resumes/{id}/password", auth(http.HandlerFunc(s.handleRemovePassword)))
	mux.Handle("GET /resumes/{id}/statistics", auth(http.HandlerFunc(s.handleGetStatistics)))

	// Editor endpoints
	mux.Handle("GET /resumes/{id}/move-targets", auth(http.HandlerFunc(s.handleMoveTargets)))
	mux.Handle("POST /resumes/{id}/move", auth(http.HandlerFunc(s.handleMove)))
	mux.Handle("GET /resumes/{id}/layout/issues", auth(http.HandlerFunc(s.handleLayoutIssues)))

	// Public endpoints
	mux.Handle("GET /public/{userId}/{slug}", optional(http.HandlerFunc(s.handleGetPublicResume)))
	mux.Handle("POST /public/{userId}/{slug}/verify", s.withRateLimit(http.HandlerFunc(s.handleVerifyPassword)))
	mux.Handle("POST /public/{userId}/{slug}/downloads", optional(http.HandlerFunc(s.handleRecordDownload)))

	return s.withLogging(s.withCORS(metrics.Middleware(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+resumeAccessHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &loggingRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

type loggingRecorder struct {
	http.ResponseWriter
	status int
}

func (r *loggingRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRateLimit throttles a handler per client IP and route
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, clientID+" "+r.Pattern)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.logger.Warn("rate limit exceeded", "client", clientID, "path", r.URL.Path)
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
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

// serviceError writes err with the status from HTTPStatus. Invalid documents
// carry their field errors or layout issues in the body.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.errorResponse(w, status, "internal server error")
		return
	}

	body := map[string]any{"error": err.Error()}
	var ve *schemas.ValidationError
	var ie *layout.IssuesError
	switch {
	case errors.As(err, &ve):
		body["errors"] = ve.Errors
	case errors.As(err, &ie):
		body["issues"] = ie.Issues
	}
	s.jsonResponse(w, status, body)
}
