// Package grpc serves the standard gRPC health protocol and server reflection. The health
// status follows periodic pings of the primary store.
package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "storefront.v1.Storefront"

// Pinger is satisfied by contracts.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthMonitor keeps the health server in sync with the store.
type HealthMonitor struct {
	health   *health.Server
	pinger   Pinger
	logger   *slog.Logger
	interval time.Duration
}

// NewServer creates a gRPC server with health and reflection registered. The returned
// monitor must be started with Run for the status to leave NOT_SERVING.
func NewServer(pinger Pinger, logger *slog.Logger, interval time.Duration) (*grpc.Server, *HealthMonitor) {
	srv := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, &HealthMonitor{
		health:   hs,
		pinger:   pinger,
		logger:   logger,
		interval: interval,
	}
}

// Check pings the store once and updates the served status.
func (m *HealthMonitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := m.pinger.Ping(ctx); err != nil {
		m.logger.Warn("store ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.health.SetServingStatus("", st)
	m.health.SetServingStatus(ServiceName, st)
	return st
}

// Run checks immediately and then every interval until ctx is cancelled, after which all
// services report NOT_SERVING.
func (m *HealthMonitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.health.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency", time.Since(start),
		)
		return resp, err
	}
}
