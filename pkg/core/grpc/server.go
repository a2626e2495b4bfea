package grpc

import (
	"context"
	"net"
	"strconv"
	"time"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string
	Port              int
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
	Logger            *logging.Logger
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "localhost",
		Port:              9180,
		MaxRecvMsgSize:    16 * 1024 * 1024, // 16MB
		MaxSendMsgSize:    16 * 1024 * 1024, // 16MB
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Server wraps a gRPC server with additional functionality
type Server struct {
	server   *grpc.Server
	config   ServerConfig
	logger   *logging.Logger
	listener net.Listener
}

// NewServer creates a new gRPC server with the recovery, logging and
// request-id interceptors installed
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("grpc-server")
	}

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		// RequestID runs first so that logging and recovery see the ID
		grpc.ChainUnaryInterceptor(
			RequestIDInterceptor(),
			LoggingInterceptor(logger),
			RecoveryInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			StreamLoggingInterceptor(logger),
			StreamRecoveryInterceptor(logger),
		),
	}
	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)
	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server: server,
		config: cfg,
		logger: logger,
	}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// Listen opens the configured TCP address
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return ippcerr.Wrap(err, "listen").
			WithCode(ippcerr.CodeInvalidParameter).
			WithDetail("address", addr)
	}
	s.listener = listener
	return nil
}

// Serve serves on lis, or on the listener opened by Listen when lis is nil.
// It blocks until the server stops.
func (s *Server) Serve(lis net.Listener) error {
	if lis != nil {
		s.listener = lis
	}
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.logger.Info("gRPC server listening", "address", s.Address())
	if err := s.server.Serve(s.listener); err != nil && err != grpc.ErrServerStopped {
		return ippcerr.Wrap(err, "serve").WithCode(ippcerr.CodeInternal)
	}
	return nil
}

// Start listens on the configured address and serves
func (s *Server) Start() error {
	return s.Serve(nil)
}

// StartAsync starts the gRPC server in a goroutine
func (s *Server) StartAsync() error {
	if err := s.Listen(); err != nil {
		return err
	}

	go func() {
		if err := s.Serve(nil); err != nil {
			// Log error but don't panic - server might be shutting down
			s.logger.Error("gRPC server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.server.GracefulStop()
}

// StopWithTimeout stops the server gracefully, forcing it down when ctx
// expires first
func (s *Server) StopWithTimeout(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
		s.server.Stop()
	}
}

// Address returns the server address
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}
