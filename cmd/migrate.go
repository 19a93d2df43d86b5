package cmd

import (
	"fmt"
	"log/slog"

	"github.com/easelhq/easel/db"
	"github.com/easelhq/easel/internal/config"
)

// runMigrate applies all pending database migrations.
func runMigrate(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("applying migrations",
		"host", cfg.PostgresHost,
		"database", cfg.PostgresDBName)

	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("migrations applied")
	return nil
}
