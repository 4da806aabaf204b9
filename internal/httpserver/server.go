// Package httpserver runs an HTTP server with sane timeouts and graceful
// shutdown shared by the three application binaries.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/webtriad/webtriad/pkg/logger"
)

// Server wraps http.Server with the timeouts used across the binaries.
type Server struct {
	srv *http.Server
	log *logger.Logger
}

// New creates a server listening on addr.
func New(addr string, handler http.Handler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault("httpserver")
	}
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		log: log,
	}
}

// Start serves until the listener closes. A closed-server result is not an
// error.
func (s *Server) Start() error {
	s.log.Infof("listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down")
	return s.srv.Shutdown(ctx)
}
