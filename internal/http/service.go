package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// service owns one http.Server. Start binds and serves, Shutdown drains.
type service struct {
	name   string
	server *http.Server
	logger *slog.Logger

	mu   sync.Mutex
	addr net.Addr
}

func newService(name, host string, port int, logger *slog.Logger) *service {
	return &service{
		name:   name,
		logger: logger,
		server: &http.Server{
			Addr:              net.JoinHostPort(host, fmt.Sprint(port)),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// serve blocks until Shutdown. Port 0 binds an ephemeral port, reported by Addr.
func (s *service) serve(handler http.Handler) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", s.name, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.server.Handler = handler
	s.mu.Unlock()

	s.logger.Info("starting "+s.name, slog.String("addr", ln.Addr().String()))

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s stopped: %w", s.name, err)
	}
	return nil
}

// Addr returns the bound address, or nil until Start has bound it.
func (s *service) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx is done.
func (s *service) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down " + s.name)
	return s.server.Shutdown(ctx)
}
