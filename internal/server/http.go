package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunely/internal/shared"
)

const defaultShutdownTimeout = 5 * time.Second

// HTTPServer runs an [http.Server] until its context is canceled, then shuts it down gracefully.
type HTTPServer struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *log.Logger
}

// NewHTTPServer creates a server for handler using the address and timeouts in config.
func NewHTTPServer(config shared.ServerConfig, handler http.Handler, logger *log.Logger) *HTTPServer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &HTTPServer{
		srv: &http.Server{
			Addr:              config.Addr(),
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
		},
		shutdownTimeout: timeout,
		logger:          logger,
	}
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.srv.Addr
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled or the server fails.
//
// A canceled context is a clean stop and returns nil.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
