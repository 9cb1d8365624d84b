// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"activity-signup/internal/common/config"
	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"
)

// Handlers are the API endpoints. A nil handler leaves its route unregistered.
type Handlers struct {
	ListActivities http.Handler
	Signup         http.Handler
	Unregister     http.Handler
}

// ReadinessCheck reports whether backing services can take traffic.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	config          config.ServerConfig
	handlers        Handlers
	ready           ReadinessCheck
	errors          *apperrors.ErrorHandler
	logger          logger.Logger
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func New(cfg config.ServerConfig, handlers Handlers, ready ReadinessCheck, log logger.Logger) *Server {
	log = log.WithFields(map[string]interface{}{"component": "http"})
	s := &Server{
		config:          cfg,
		handlers:        handlers,
		ready:           ready,
		errors:          apperrors.NewErrorHandler(log),
		logger:          log,
		shutdownTimeout: config.GetDuration(cfg.ShutdownTimeout),
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 30 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

// Handler returns the routed mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return s.requestID(s.recovery(s.instrument(mux)))
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln. When ctx ends, in-flight requests get
// the shutdown timeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{
			"address": ln.Addr().String(),
		})
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server", map[string]interface{}{
		"timeout": s.shutdownTimeout.String(),
	})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
