package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"FundingIntel/backend/go/internal/config"
	"FundingIntel/backend/go/pkg/circuitbreaker"
	"FundingIntel/backend/go/pkg/httpmiddleware"
	"FundingIntel/backend/go/pkg/logger"

	"golang.org/x/time/rate"
)

// Middleware defines a function to wrap an http.Handler.
type Middleware func(http.Handler) http.Handler

// Server wraps http.Server and applies the configured middleware chain
// around the application handler.
type Server struct {
	httpServer  *http.Server
	log         *logger.Logger
	healthPaths map[string]bool
}

// ServerOption defines a function for configuring a Server.
type ServerOption func(*Server)

// WithAddress sets the address for the server to listen on.
func WithAddress(addr string) ServerOption {
	return func(s *Server) {
		s.httpServer.Addr = addr
	}
}

// WithLogger sets the logger used for lifecycle and breaker events.
func WithLogger(log *logger.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// WithHealthPaths lists paths (liveness, readiness) that skip the middleware
// chain, so a failing health check neither trips the breaker nor gets rate limited.
func WithHealthPaths(paths ...string) ServerOption {
	return func(s *Server) {
		if s.healthPaths == nil {
			s.healthPaths = make(map[string]bool, len(paths))
		}
		for _, p := range paths {
			s.healthPaths[p] = true
		}
	}
}

// NewServer creates a Server for handler. Rate limiting and circuit breaking
// are applied when enabled in cfg.
func NewServer(cfg *config.AppConfig, handler http.Handler, opts ...ServerOption) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Address,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.httpServer.Addr == "" {
		srv.httpServer.Addr = ":8080"
	}

	var middlewares []Middleware
	if rl := cfg.Middleware.RateLimiter; rl.Enabled {
		srv.log.Infof("Enabling rate limiter: %.1f req/s, burst %d", rl.Rate, rl.Burst)
		middlewares = append(middlewares, httpmiddleware.RateLimit(rate.NewLimiter(rate.Limit(rl.Rate), rl.Burst)))
	}
	if cfg.Middleware.CircuitBreaker.Enabled {
		breaker, err := NewBreaker("http_server", cfg.Middleware.CircuitBreaker, srv.log)
		if err != nil {
			return nil, fmt.Errorf("failed to create circuit breaker: %w", err)
		}
		srv.log.Info("Enabling circuit breaker middleware")
		middlewares = append(middlewares, httpmiddleware.CircuitBreak(breaker))
	}

	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	if len(srv.healthPaths) == 0 || len(middlewares) == 0 {
		srv.httpServer.Handler = wrapped
		return srv, nil
	}
	srv.httpServer.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if srv.healthPaths[r.URL.Path] {
			handler.ServeHTTP(w, r)
			return
		}
		wrapped.ServeHTTP(w, r)
	})
	return srv, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe starts the HTTP server. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.Infof("Starting server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewBreaker builds a named circuit breaker from config and logs its transitions.
func NewBreaker(name string, cfg config.CircuitBreakerConfig, log *logger.Logger) (*circuitbreaker.Breaker, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid circuit breaker timeout duration: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		FailureThreshold: cfg.FailureThreshold,
		SuccessThreshold: cfg.SuccessThreshold,
		Timeout:          timeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.WithPayload(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}), nil
}
