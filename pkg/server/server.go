package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/niels/tiny-file-server/pkg/config"
	"github.com/niels/tiny-file-server/pkg/files"
	"github.com/niels/tiny-file-server/pkg/logging"
	"github.com/niels/tiny-file-server/pkg/response"
	"github.com/niels/tiny-file-server/pkg/router"
	"github.com/rs/zerolog"
)

// BindError is returned when the listening socket cannot be bound
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Server binds one address and serves the file router on it
type Server struct {
	config     *config.Config
	httpServer *http.Server
	listener   net.Listener
	logger     zerolog.Logger
}

// New wires resolver, reader, response builder and router for cfg.
// A nil fs reads from the host filesystem.
func New(cfg *config.Config, fs files.Opener) *Server {
	resolver := files.NewResolver(cfg.Server.Root, cfg.Server.ContainRoot)
	reader := files.NewReader(fs, resolver)
	builder := response.NewBuilder(reader, cfg.Server.NotFoundFile, cfg.Server.InvalidMethodFile)
	rt := router.NewRouter(builder, cfg.Server.IndexFile)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Handler:           AccessLog(rt),
			ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
		},
		logger: logging.WithComponent("server"),
	}
}

// Listen binds the configured address. Failure is returned as a *BindError.
func (s *Server) Listen() error {
	addr := s.config.ServerAddress()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until the listener fails or ctx is done.
// Cancelling ctx closes the listener and every open connection at once.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", s.listener.Addr().String()).
			Str("root", s.config.Server.Root).
			Msg("Serving files")
		errCh <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		s.logger.Info().Msg("Stopping server")
		if err := s.httpServer.Close(); err != nil {
			return fmt.Errorf("failed to close server: %w", err)
		}
		<-errCh
		return nil
	}
}

// Run binds and serves. A bind failure aborts immediately.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}
