// Package grpc implements the gRPC transport of the shop backend. It serves
// the standard grpc.health.v1.Health service, whose status follows the
// storage health probe.
package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-shop/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health-checked service name of the shop API. The empty
// name reports the same status for the server as a whole.
const ServiceName = "goshop.Shop"

// Handler is the root gRPC transport handler.
//
// It owns the health server. The status starts as NOT_SERVING and switches
// once the storage probe reports.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose services are not yet serving.
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.ReportStorageStatus(false)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// ServerOptions returns the interceptors every server hosting this handler
// should use.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.recoveryInterceptor, h.loggingInterceptor),
	}
}

// ReportStorageStatus implements the storage probe's status sink.
func (h *Handler) ReportStorageStatus(up bool) {
	servingStatus := healthpb.HealthCheckResponse_NOT_SERVING
	if up {
		servingStatus = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", servingStatus)
	h.health.SetServingStatus(ServiceName, servingStatus)
}

// Shutdown marks every service NOT_SERVING and ignores later updates, so
// clients see the server draining before it stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().
				Str("method", info.FullMethod).
				Any("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("gRPC panic recovered")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

func (h *Handler) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	h.logger.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()
	return resp, err
}
