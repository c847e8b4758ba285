package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
	"github.com/light-bringer/storefront-service/internal/repo/spannerrepo"
)

// Config for the outbox cleanup job
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	jobCfg := Config{}
	flag.StringVar(&jobCfg.SpannerDB, "database", cfg.Storage.SpannerDatabase, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&jobCfg.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&jobCfg.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&jobCfg.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if jobCfg.SpannerDB == "" {
		log.Fatal("Error: -database flag or SPANNER_DATABASE is required")
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format).With("job", "cleanup_outbox")
	if err := cleanupOutbox(context.Background(), jobCfg, logger); err != nil {
		logger.Error("cleanup failed", "error", err)
		os.Exit(1)
	}
}

func cleanupOutbox(ctx context.Context, cfg Config, logger *slog.Logger) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	req := spannerrepo.PurgeRequest{
		CompletedBefore: now.AddDate(0, 0, -cfg.CompletedRetentionDays),
		FailedBefore:    now.AddDate(0, 0, -cfg.FailedRetentionDays),
		DryRun:          cfg.DryRun,
	}
	logger.Info("starting outbox cleanup",
		"completed_cutoff", req.CompletedBefore.Format(time.RFC3339),
		"failed_cutoff", req.FailedBefore.Format(time.RFC3339),
		"dry_run", req.DryRun,
	)

	result, err := spannerrepo.NewStore(client).PurgeOutbox(ctx, req)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		logger.Info("dry run: nothing deleted",
			"completed_matching", result.Completed,
			"failed_matching", result.Failed,
		)
		return nil
	}
	logger.Info("cleanup completed", "deleted", result.Deleted)
	return nil
}
