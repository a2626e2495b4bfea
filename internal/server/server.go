// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     server
// Description: gRPC translation service
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"errors"
	"net"
	"time"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/translator"
	"github.com/msto63/ippcode/pkg/core/cache"
	"github.com/msto63/ippcode/pkg/core/config"
	coreGrpc "github.com/msto63/ippcode/pkg/core/grpc"
	"github.com/msto63/ippcode/pkg/core/health"
	"github.com/msto63/ippcode/pkg/core/logging"
	"github.com/msto63/ippcode/pkg/core/version"
	"google.golang.org/grpc/codes"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// probeSource is translated by the health check
const probeSource = ".IPPcode18\nCREATEFRAME\n"

// Ensure Server implements TranslatorServer
var _ TranslatorServer = (*Server)(nil)

// Server is the ippc gRPC server
type Server struct {
	translator *translator.Service
	cache      *cache.Cache[*translator.Result] // nil when disabled
	grpc       *coreGrpc.Server
	health     *health.Registry
	grpcHealth *grpchealth.Server
	logger     *logging.Logger
	config     Config
	startTime  time.Time
}

// Config holds server configuration
type Config struct {
	Server     config.ServerConfig
	Translator *translator.Service
	Logger     *logging.Logger
}

// New creates a new translation server
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("ippc-server")
	}

	svc := cfg.Translator
	if svc == nil {
		var err error
		svc, err = translator.NewService(translator.Config{Logger: logger})
		if err != nil {
			return nil, ippcerr.Wrap(err, "failed to create translator").
				WithOperation("server.New")
		}
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Server.Host
	grpcCfg.Port = cfg.Server.Port
	grpcCfg.EnableReflection = cfg.Server.EnableReflection
	grpcCfg.Logger = logger
	if cfg.Server.MaxMessageSize > 0 {
		grpcCfg.MaxRecvMsgSize = cfg.Server.MaxMessageSize
		grpcCfg.MaxSendMsgSize = cfg.Server.MaxMessageSize
	}
	if cfg.Server.KeepaliveTime.Duration > 0 {
		grpcCfg.KeepaliveInterval = cfg.Server.KeepaliveTime.Duration
	}
	if cfg.Server.KeepaliveTimeout.Duration > 0 {
		grpcCfg.KeepaliveTimeout = cfg.Server.KeepaliveTimeout.Duration
	}

	s := &Server{
		translator: svc,
		grpc:       coreGrpc.NewServer(grpcCfg),
		health:     health.NewRegistry(ServiceName, version.Server),
		grpcHealth: grpchealth.NewServer(),
		logger:     logger,
		config:     cfg,
		startTime:  time.Now(),
	}
	if cfg.Server.CacheSize > 0 {
		s.cache = cache.New[*translator.Result](cache.Config{
			MaxItems:        cfg.Server.CacheSize,
			TTL:             cfg.Server.CacheTTL.Duration,
			CleanupInterval: time.Minute,
		})
	}

	s.health.RegisterFunc("translator", s.checkTranslator)

	RegisterTranslatorServer(s.grpc.GRPCServer(), s)
	healthpb.RegisterHealthServer(s.grpc.GRPCServer(), s.grpcHealth)

	return s, nil
}

// Translate implements TranslatorServer.Translate
func (s *Server) Translate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	field, ok := req.GetFields()[FieldSource]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "source is required")
	}
	src, ok := field.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "source must be a string")
	}

	result, err := s.translate(ctx, src.StringValue)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		FieldXML:          result.XML,
		FieldInstructions: result.Instructions,
		FieldLOC:          result.Stats.LinesOfCode(),
		FieldComments:     result.Stats.Comments(),
	})
	if err != nil {
		s.logger.Error("Translate response failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// translate serves repeated sources from the cache. Rejected sources are
// not cached.
func (s *Server) translate(ctx context.Context, source string) (*translator.Result, error) {
	if s.cache == nil {
		return s.translator.TranslateString(ctx, source)
	}

	result, cached, err := s.cache.GetOrSet(cache.Key(source), func() (*translator.Result, error) {
		return s.translator.TranslateString(ctx, source)
	})
	if cached {
		s.logger.Debug("Translation served from cache", "instructions", result.Instructions)
	}
	return result, err
}

// CacheStats returns the translation cache counters
func (s *Server) CacheStats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stats()
}

// toStatus maps translation errors onto gRPC status codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case ippcerr.ExitCode(err) == ippcerr.ExitSourceFormat:
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// checkTranslator translates a minimal program
func (s *Server) checkTranslator(ctx context.Context) health.CheckResult {
	result, err := s.translator.TranslateString(ctx, probeSource)
	if err != nil {
		return health.CheckResult{
			Status:  health.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return health.CheckResult{
		Status:  health.StatusHealthy,
		Message: "translator is operational",
		Details: map[string]interface{}{"instructions": result.Instructions},
	}
}

// Health runs the health checks and publishes the result to the gRPC
// health service
func (s *Server) Health(ctx context.Context) *health.Report {
	return s.health.Publish(ctx, s.grpcHealth)
}

// Serve runs the server on lis, or on the configured address when lis is
// nil, until it is stopped
func (s *Server) Serve(lis net.Listener) error {
	report := s.Health(context.Background())
	s.logger.Info("Starting translation server",
		"version", version.Server,
		"health", report.Status,
	)
	return s.grpc.Serve(lis)
}

// Shutdown marks the service as not serving and stops the server
func (s *Server) Shutdown(ctx context.Context) {
	s.grpcHealth.Shutdown()
	s.grpc.StopWithTimeout(ctx)
	if s.cache != nil {
		s.cache.Close()
	}
	s.logger.Info("Translation server stopped", "uptime", time.Since(s.startTime))
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}
