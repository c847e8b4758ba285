package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"google.golang.org/grpc"
)

// serve runs both servers until ctx is cancelled or either server fails, then stops both.
// The first server failure is returned.
func serve(ctx context.Context, logger *slog.Logger, httpServer *http.Server, grpcServer *grpc.Server, lis net.Listener) error {
	errs := make(chan error, 2)

	go func() {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errs <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var failed error
	select {
	case <-ctx.Done():
	case failed = <-errs:
		logger.Error("server failed", "error", failed)
	}
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	return failed
}
