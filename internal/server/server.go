package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/config"
	"github.com/jonathan/fastfolio/internal/logging"
	"github.com/jonathan/fastfolio/internal/pipeline"
	"github.com/jonathan/fastfolio/internal/server/middleware"
	"github.com/jonathan/fastfolio/internal/server/ratelimit"
	"github.com/jonathan/fastfolio/internal/types"
)

// Runner executes one generation request
type Runner interface {
	Run(ctx context.Context, mode pipeline.Mode, profile *types.StudentProfile) (*pipeline.Artifact, error)
}

// CapabilityFunc reports which external collaborators are usable
type CapabilityFunc func() map[string]bool

// Options holds everything the server needs
type Options struct {
	Config       config.Config
	Runner       Runner
	Capabilities CapabilityFunc
	Logger       *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	runner       Runner
	capabilities CapabilityFunc
	uploads      *UploadStore
	rateLimiter  *ratelimit.Limiter
	maxBodyBytes int64
	logger       *zap.Logger
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Runner == nil {
		return nil, errors.New("server requires a runner")
	}
	logger := opts.Logger
	logger = logging.OrNop(logger)
	capabilities := opts.Capabilities
	if capabilities == nil {
		capabilities = func() map[string]bool { return map[string]bool{} }
	}
	cfg := opts.Config

	s := &Server{
		runner:       opts.Runner,
		capabilities: capabilities,
		uploads:      NewUploadStore(cfg.UploadDir, cfg.MaxUploadBytes, logger.Named("uploads")),
		maxBodyBytes: cfg.MaxUploadBytes,
		logger:       logger,
	}

	mux := http.NewServeMux()
	generationPaths := make([]string, 0, len(pipeline.ModeRegistry))
	for _, mode := range pipeline.Modes() {
		def := pipeline.ModeRegistry[mode]
		path := "/" + def.Endpoint
		handler := s.handleGenerate(def)
		mux.HandleFunc("POST "+path, handler)
		mux.HandleFunc("POST "+path+"/{$}", handler)
		generationPaths = append(generationPaths, path)
	}
	mux.HandleFunc("POST /uploads", s.handleUpload)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RateLimitOn(), generationPaths))

	s.handler = middleware.RequestID(
		middleware.Logging(logger.Named("http"))(
			middleware.CORS()(
				s.withRateLimit(mux))))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      300 * time.Second, // Model call plus rendering
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until SIGINT/SIGTERM or ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

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

// Close stops background work without serving; used by tests
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withRateLimit rejects requests over the client's endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID uses the remote IP; forwarded headers are not trusted
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds()+0.5)))
	}
	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", clientID(r)),
		zap.Int("limit", info.Limit),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())))
	s.jsonResponse(w, http.StatusTooManyRequests, ErrorResponse{
		Error: "Rate limit exceeded. Please try again later.",
		Code:  CodeRateLimited,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse maps err to a status and writes the JSON error body
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, code := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("code", code),
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.Error(err))
	}
	s.jsonResponse(w, status, ErrorResponse{Error: publicMessage(status, err), Code: code})
}
