package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
	"github.com/light-bringer/storefront-service/internal/services"
	grpctransport "github.com/light-bringer/storefront-service/internal/transport/grpc"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
)

const (
	healthCheckInterval = 10 * time.Second
	shutdownTimeout     = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	if logging.ParseLevel(cfg.Log.Level) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting storefront service",
		"storage_backend", cfg.Storage.Backend,
		"cart_backend", cfg.Cart.Backend,
		"kafka_enabled", len(cfg.Kafka.Brokers) > 0,
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize service dependencies (DI container)
	svc, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer svc.Close()

	if err := svc.BootstrapAdmin(ctx); err != nil {
		return err
	}

	// 3. Outbox relay and health monitor run until shutdown
	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		svc.Relay.Run(bgCtx)
	}()

	// 4. gRPC server: health + reflection
	grpcServer, monitor := grpctransport.NewServer(svc.Infra.Store, logger, healthCheckInterval)
	go monitor.Run(bgCtx)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	// 5. HTTP server: REST API
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httptransport.NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Serve until a signal or a server failure, then shut down gracefully
	serveErr := serve(ctx, logger, httpServer, grpcServer, lis)

	cancelBackground()
	<-relayDone

	return serveErr
}
