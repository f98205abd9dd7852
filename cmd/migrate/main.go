package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -status

import (
	"context"
	"flag"
	"os"

	"sales-assistant/internal/shared/config"
	"sales-assistant/internal/shared/storage/db"
	"sales-assistant/internal/shared/telemetry"
)

func main() {
	status := flag.Bool("status", false, "print migration status instead of applying")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect.failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *status {
		if err := db.MigrationStatus(ctx, sqlDB); err != nil {
			telemetry.Error("migrate.status.failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		return
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}
