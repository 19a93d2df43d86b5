// Package cmd provides CLI commands for easel.
//
// Commands:
//   - detect: classify stdin content and print the detection result
//   - migrate: apply pending database migrations
//   - versions: list the version history of an artifact
//   - version: show build information
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/easelhq/easel/internal/config"
	"github.com/easelhq/easel/internal/log"
)

// Execute is the main entry point for the easel CLI.
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := log.ParseLevel(cfg.LogLevel)
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level, JSON: cfg.LogJSON})

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "detect":
		return runDetect(cfg, os.Args[2:])
	case "migrate":
		return runMigrate(cfg, logger)
	case "versions":
		return runVersions(cfg, logger, os.Args[2:])
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("easel - generated content artifact store")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  easel detect [-context \"<user request>\"]   Classify stdin content")
	fmt.Println("  easel migrate                              Apply database migrations")
	fmt.Println("  easel versions <artifact-id>               List an artifact's versions")
	fmt.Println("  easel --version                            Show version information")
	fmt.Println("  easel --help                               Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_URL       PostgreSQL connection URL")
	fmt.Println("  EASEL_*            Override any config key (e.g. EASEL_LOG_LEVEL)")
	fmt.Println("  DEBUG              Enable debug logging")
}
