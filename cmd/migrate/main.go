// Command migrate creates the Spanner instance and database named by the service
// configuration and applies the DDL files in the migrations directory in name order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
)

var (
	projectFlag  = flag.String("project", "", "GCP project ID (overrides SPANNER_DATABASE)")
	instanceFlag = flag.String("instance", "", "Spanner instance ID (overrides SPANNER_DATABASE)")
	databaseFlag = flag.String("database", "", "Spanner database ID (overrides SPANNER_DATABASE)")
	migrateDir   = flag.String("migrations", "migrations", "Directory containing migration SQL files")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format).With("cmd", "migrate")

	target, err := resolveTarget(cfg.Storage.SpannerDatabase, target{
		Project:  *projectFlag,
		Instance: *instanceFlag,
		Database: *databaseFlag,
	})
	if err != nil {
		logger.Error("invalid migration target", "error", err)
		os.Exit(1)
	}

	emulator := os.Getenv("SPANNER_EMULATOR_HOST")
	if emulator != "" {
		logger.Info("using Spanner emulator", "host", emulator)
	}

	m := &migrator{target: target, dir: *migrateDir, emulator: emulator != "", logger: logger}
	if err := m.run(context.Background()); err != nil {
		logger.Error("migration failed", "database", target.DatabasePath(), "error", err)
		os.Exit(1)
	}
	logger.Info("migrations completed", "database", target.DatabasePath())
}

// target names the database to migrate.
type target struct {
	Project  string
	Instance string
	Database string
}

func (t target) ProjectPath() string  { return "projects/" + t.Project }
func (t target) InstancePath() string { return t.ProjectPath() + "/instances/" + t.Instance }
func (t target) DatabasePath() string { return t.InstancePath() + "/databases/" + t.Database }

// parseDatabasePath splits projects/<p>/instances/<i>/databases/<d>.
func parseDatabasePath(path string) (target, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return target{}, fmt.Errorf("database path %q is not projects/<project>/instances/<instance>/databases/<database>", path)
	}
	t := target{Project: parts[1], Instance: parts[3], Database: parts[5]}
	if t.Project == "" || t.Instance == "" || t.Database == "" {
		return target{}, fmt.Errorf("database path %q has an empty segment", path)
	}
	return t, nil
}

// resolveTarget starts from the configured database path and applies non-empty overrides.
// The path may be empty when all three overrides are given.
func resolveTarget(path string, overrides target) (target, error) {
	var t target
	if strings.TrimSpace(path) != "" {
		parsed, err := parseDatabasePath(path)
		if err != nil {
			return target{}, err
		}
		t = parsed
	}
	if overrides.Project != "" {
		t.Project = overrides.Project
	}
	if overrides.Instance != "" {
		t.Instance = overrides.Instance
	}
	if overrides.Database != "" {
		t.Database = overrides.Database
	}
	if t.Project == "" || t.Instance == "" || t.Database == "" {
		return target{}, errors.New("set SPANNER_DATABASE or all of -project, -instance and -database")
	}
	return t, nil
}

type migrator struct {
	target   target
	dir      string
	emulator bool
	logger   *slog.Logger
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer admin.Close()

	if err := m.ensureDatabase(ctx, admin); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx, admin); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.target.InstancePath()})
	switch {
	case err == nil:
		m.logger.Info("instance exists", "instance", m.target.InstancePath())
		return nil
	case status.Code(err) != codes.NotFound:
		return fmt.Errorf("failed to look up instance: %w", err)
	case !m.emulator:
		return fmt.Errorf("instance %s does not exist", m.target.InstancePath())
	}

	m.logger.Info("creating instance", "instance", m.target.InstancePath())
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     m.target.ProjectPath(),
		InstanceId: m.target.Instance,
		Instance: &instancepb.Instance{
			Config:      m.target.ProjectPath() + "/instanceConfigs/emulator-config",
			DisplayName: "Storefront Development",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance creation: %w", err)
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context, admin *database.DatabaseAdminClient) error {
	_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.target.DatabasePath()})
	if err == nil {
		m.logger.Info("database exists", "database", m.target.DatabasePath())
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to look up database: %w", err)
	}

	m.logger.Info("creating database", "database", m.target.DatabasePath())
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.target.InstancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.target.Database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func (m *migrator) applyMigrations(ctx context.Context, admin *database.DatabaseAdminClient) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		m.logger.Warn("no migration files found", "dir", m.dir)
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		statements := splitDDLStatements(string(content))
		if len(statements) == 0 {
			continue
		}

		m.logger.Info("applying migration", "file", name, "statements", len(statements))
		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.target.DatabasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
	}
	return nil
}

// splitDDLStatements drops blank and "--" comment lines and splits the rest on semicolons.
func splitDDLStatements(content string) []string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
