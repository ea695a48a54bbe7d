package main

import (
	"context"
	"flag"
	"log"
	"slices"
	"time"

	"heyjob-backend/config"
	"heyjob-backend/internal/repository/postgres"
	"heyjob-backend/pkg/database"

	"go.uber.org/zap"
)

func main() {
	down := flag.Int("down", 0, "roll back the N most recent migrations instead of applying pending ones")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.DBUrl == "" {
		logger.Fatal("DATABASE_URL is required for migrations")
	}

	ctx := context.Background()

	migrator, err := database.OpenMigrator(ctx, cfg.DBUrl)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.CreateMigrationsTable(ctx); err != nil {
		logger.Fatal("Failed to create migrations table", zap.Error(err))
	}

	applied, err := migrator.GetAppliedMigrations(ctx)
	if err != nil {
		logger.Fatal("Failed to get applied migrations", zap.Error(err))
	}

	if *down > 0 {
		rollback(ctx, logger, migrator, applied, *down)
		return
	}

	pending := database.Pending(postgres.Migrations, applied)
	if len(pending) == 0 {
		logger.Info("Schema is up to date", zap.Int("applied", len(applied)))
		return
	}

	for _, migration := range pending {
		logger.Info("Applying migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description),
		)
		if err := migrator.ApplyMigration(ctx, migration); err != nil {
			logger.Fatal("Failed to apply migration", zap.Int("version", migration.Version), zap.Error(err))
		}
	}

	logger.Info("All migrations completed successfully", zap.Int("applied", len(pending)))
}

func rollback(ctx context.Context, logger *zap.Logger, migrator *database.Migrator, applied map[int]time.Time, n int) {
	done := slices.Clone(postgres.Migrations)
	done = slices.DeleteFunc(done, func(m database.Migration) bool {
		_, ok := applied[m.Version]
		return !ok
	})
	slices.SortFunc(done, func(a, b database.Migration) int { return b.Version - a.Version })

	for _, migration := range done[:min(n, len(done))] {
		logger.Info("Rolling back migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description),
		)
		if err := migrator.RollbackMigration(ctx, migration); err != nil {
			logger.Fatal("Failed to roll back migration", zap.Int("version", migration.Version), zap.Error(err))
		}
	}
}
