package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/easelhq/easel/internal/app"
	"github.com/easelhq/easel/internal/config"
)

// runVersions lists the version history of one artifact, newest first.
func runVersions(cfg *config.Config, logger *slog.Logger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: easel versions <artifact-id>")
	}
	artifactID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid artifact id %q: %w", args[0], err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	art, err := a.Store.Artifact(ctx, artifactID)
	if err != nil {
		return fmt.Errorf("failed to load artifact: %w", err)
	}
	versions, err := a.Store.Versions(ctx, artifactID)
	if err != nil {
		return fmt.Errorf("failed to list versions: %w", err)
	}

	fmt.Printf("%s (%s), %d version(s)\n", art.Title, art.Type, len(versions))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tCREATED\tHASH\tTITLE")
	for _, v := range versions {
		fmt.Fprintf(w, "v%d\t%s\t%s\t%s\n",
			v.VersionNumber,
			v.CreatedAt.Format(time.RFC3339),
			v.ContentHash[:12],
			v.Title)
	}
	return w.Flush()
}
