package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/easelhq/easel/internal/sqlc"
)

const (
	// DefaultRetainVersions is the default per-artifact retention bound
	// applied by Prune.
	DefaultRetainVersions = 20

	// createRetries bounds transparent retries of CreateVersion on a
	// version-number collision. The row lock makes collisions rare; hitting
	// the bound indicates a storage problem rather than normal contention.
	createRetries = 3
)

// Querier defines the database operations the Store depends on.
// Following Go best practices: interfaces are defined by the consumer,
// not the provider. sqlc.Queries satisfies it; tests supply an in-memory
// implementation.
type Querier interface {
	CreateArtifact(ctx context.Context, arg sqlc.CreateArtifactParams) (sqlc.Artifact, error)
	GetArtifact(ctx context.Context, id pgtype.UUID) (sqlc.Artifact, error)
	GetArtifactForUpdate(ctx context.Context, id pgtype.UUID) (sqlc.Artifact, error)
	ListSessionArtifacts(ctx context.Context, sessionID pgtype.UUID) ([]sqlc.Artifact, error)
	UpdateArtifactTitle(ctx context.Context, arg sqlc.UpdateArtifactTitleParams) error
	InsertVersion(ctx context.Context, arg sqlc.InsertVersionParams) (sqlc.ArtifactVersion, error)
	GetVersion(ctx context.Context, arg sqlc.GetVersionParams) (sqlc.ArtifactVersion, error)
	GetLatestVersion(ctx context.Context, artifactID pgtype.UUID) (sqlc.ArtifactVersion, error)
	ListVersions(ctx context.Context, artifactID pgtype.UUID) ([]sqlc.ArtifactVersion, error)
	CountVersions(ctx context.Context, artifactID pgtype.UUID) (int64, error)
	PruneVersions(ctx context.Context, arg sqlc.PruneVersionsParams) (int64, error)
	DeleteArtifact(ctx context.Context, id pgtype.UUID) (int64, error)
}

// Store manages artifact version history with a PostgreSQL backend.
//
// History is append-only: every save of non-duplicate content appends a new
// Version row with the next number; nothing is ever rewritten. "Reverting"
// to an old version is a caller-side selection (see the session package) and
// does not touch the store; persisting a reverted state as new history
// requires an explicit CreateVersion with that version's content.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	querier Querier
	pool    *pgxpool.Pool // nil in unit tests; disables the transactional path
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a new Store instance.
//
// Parameters:
//   - querier: database querier implementing Querier
//   - pool: PostgreSQL connection pool (nil for tests with a mock querier)
//   - logger: logger for debugging (nil = slog.Default())
func New(querier Querier, pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		querier: querier,
		pool:    pool,
		logger:  logger,
		tracer:  otel.Tracer("easel/artifact"),
	}
}

// CreateVersionParams describes one save of artifact content.
//
// ArtifactID identifies the logical artifact; the artifact row is created
// lazily on the first save. SessionID, Type, and Language only matter on that
// first save. On later saves Type is checked against the artifact's immutable
// type and the rest are ignored.
type CreateVersionParams struct {
	ArtifactID uuid.UUID
	SessionID  uuid.UUID
	Type       Type
	Language   string
	Title      string
	Content    string
}

// CreateVersion appends a new immutable version of an artifact, or returns
// the current latest version unchanged when the submitted content is
// byte-identical to it (idempotent dedup: retried saves and no-op edits do
// not spam history and do not consume a version number).
//
// Version numbers are assigned atomically. The artifact row is locked with
// SELECT ... FOR UPDATE for the duration of the read-latest/insert pair, and
// a residual unique-constraint collision is retried transparently up to
// createRetries times. Exhausting the retries surfaces ErrVersionConflict.
//
// Returns ErrTypeMismatch if p.Type differs from the existing artifact's
// type, and ErrInvalidType if p.Type is not a known Type.
func (s *Store) CreateVersion(ctx context.Context, p CreateVersionParams) (*Version, error) {
	if err := ValidateType(p.Type); err != nil {
		return nil, err
	}
	if p.ArtifactID == uuid.Nil {
		return nil, fmt.Errorf("artifact id is required")
	}

	ctx, span := s.tracer.Start(ctx, "artifact.CreateVersion",
		trace.WithAttributes(
			attribute.String("artifact.id", p.ArtifactID.String()),
			attribute.String("artifact.type", string(p.Type)),
		))
	defer span.End()

	hash := HashContent(p.Content)

	var lastErr error
	for attempt := 1; attempt <= createRetries; attempt++ {
		v, err := s.createVersionOnce(ctx, p, hash)
		if err == nil {
			return v, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
		s.logger.Debug("version number collision, retrying",
			"artifact_id", p.ArtifactID,
			"attempt", attempt)
	}

	return nil, fmt.Errorf("%w: %v", ErrVersionConflict, lastErr)
}

// createVersionOnce runs one attempt of the lock/dedup/insert sequence.
// With a pool it runs inside a transaction; without one (unit tests with a
// mock querier) it falls back to direct querier calls, which is only safe
// under external synchronization.
func (s *Store) createVersionOnce(ctx context.Context, p CreateVersionParams, hash string) (*Version, error) {
	if s.pool == nil {
		return s.createVersionWith(ctx, s.querier, p, hash)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Debug("transaction rollback", "error", err)
		}
	}()

	v, err := s.createVersionWith(ctx, sqlc.New(tx), p, hash)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return v, nil
}

func (s *Store) createVersionWith(ctx context.Context, q Querier, p CreateVersionParams, hash string) (*Version, error) {
	art, err := q.GetArtifactForUpdate(ctx, uuidToPgUUID(p.ArtifactID))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// First save: create the artifact row. A concurrent first save can
		// race here; the primary-key violation is caught by the retry loop
		// and the second attempt sees the committed row.
		art, err = q.CreateArtifact(ctx, sqlc.CreateArtifactParams{
			ID:        uuidToPgUUID(p.ArtifactID),
			SessionID: uuidToPgUUID(p.SessionID),
			Type:      string(p.Type),
			Language:  nullableString(p.Language),
			Title:     p.Title,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact %s: %w", p.ArtifactID, err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to lock artifact %s: %w", p.ArtifactID, err)
	}

	if art.Type != string(p.Type) {
		return nil, fmt.Errorf("%w: artifact %s is %q, got %q",
			ErrTypeMismatch, p.ArtifactID, art.Type, p.Type)
	}

	next := int32(1)
	latest, err := q.GetLatestVersion(ctx, uuidToPgUUID(p.ArtifactID))
	switch {
	case err == nil:
		if latest.ContentHash == hash {
			// Duplicate content: success, not an error. The caller observes
			// the dedup only through the unchanged version number.
			s.logger.Debug("duplicate content, returning existing version",
				"artifact_id", p.ArtifactID,
				"version", latest.VersionNumber)
			return sqlcVersionToVersion(latest), nil
		}
		next = latest.VersionNumber + 1
	case errors.Is(err, pgx.ErrNoRows):
		// No versions yet; next stays 1.
	default:
		return nil, fmt.Errorf("failed to read latest version of %s: %w", p.ArtifactID, err)
	}

	row, err := q.InsertVersion(ctx, sqlc.InsertVersionParams{
		ArtifactID:    uuidToPgUUID(p.ArtifactID),
		VersionNumber: next,
		Content:       p.Content,
		ContentHash:   hash,
		Title:         p.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert version %d of %s: %w", next, p.ArtifactID, err)
	}

	if p.Title != "" && p.Title != art.Title {
		if err := q.UpdateArtifactTitle(ctx, sqlc.UpdateArtifactTitleParams{
			Title: p.Title,
			ID:    uuidToPgUUID(p.ArtifactID),
		}); err != nil {
			return nil, fmt.Errorf("failed to update artifact title: %w", err)
		}
	}

	s.logger.Debug("created version",
		"artifact_id", p.ArtifactID,
		"version", row.VersionNumber)
	return sqlcVersionToVersion(row), nil
}

// Artifact retrieves an artifact's identity record.
// Returns ErrNotFound if the artifact does not exist.
func (s *Store) Artifact(ctx context.Context, artifactID uuid.UUID) (*Artifact, error) {
	row, err := s.querier.GetArtifact(ctx, uuidToPgUUID(artifactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", artifactID, err)
	}
	return sqlcArtifactToArtifact(row), nil
}

// SessionArtifacts lists all artifacts created in a session, most recently
// updated first.
func (s *Store) SessionArtifacts(ctx context.Context, sessionID uuid.UUID) ([]*Artifact, error) {
	rows, err := s.querier.ListSessionArtifacts(ctx, uuidToPgUUID(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts for session %s: %w", sessionID, err)
	}
	artifacts := make([]*Artifact, 0, len(rows))
	for _, row := range rows {
		artifacts = append(artifacts, sqlcArtifactToArtifact(row))
	}
	return artifacts, nil
}

// Versions returns the full version history of an artifact, newest first.
// Safe to call repeatedly; each call reflects the latest committed state.
func (s *Store) Versions(ctx context.Context, artifactID uuid.UUID) ([]*Version, error) {
	rows, err := s.querier.ListVersions(ctx, uuidToPgUUID(artifactID))
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of %s: %w", artifactID, err)
	}
	versions := make([]*Version, 0, len(rows))
	for _, row := range rows {
		versions = append(versions, sqlcVersionToVersion(row))
	}
	return versions, nil
}

// Version retrieves one specific version of an artifact.
// Returns ErrNotFound if that version number does not exist for the artifact.
func (s *Store) Version(ctx context.Context, artifactID uuid.UUID, versionNumber int) (*Version, error) {
	row, err := s.querier.GetVersion(ctx, sqlc.GetVersionParams{
		ArtifactID:    uuidToPgUUID(artifactID),
		VersionNumber: int32(versionNumber),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get version %d of %s: %w", versionNumber, artifactID, err)
	}
	return sqlcVersionToVersion(row), nil
}

// Latest retrieves the most recent version of an artifact.
// Returns ErrNotFound if the artifact has no versions.
func (s *Store) Latest(ctx context.Context, artifactID uuid.UUID) (*Version, error) {
	row, err := s.querier.GetLatestVersion(ctx, uuidToPgUUID(artifactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest version of %s: %w", artifactID, err)
	}
	return sqlcVersionToVersion(row), nil
}

// VersionCount returns the number of stored versions of an artifact without
// loading their content. Zero for an unknown artifact.
func (s *Store) VersionCount(ctx context.Context, artifactID uuid.UUID) (int64, error) {
	count, err := s.querier.CountVersions(ctx, uuidToPgUUID(artifactID))
	if err != nil {
		return 0, fmt.Errorf("failed to count versions of %s: %w", artifactID, err)
	}
	return count, nil
}

// Prune removes versions beyond the most recent keep, oldest first. The most
// recent version is never removed: keep is clamped to 1. Intended as a
// maintenance operation, not part of the save path.
func (s *Store) Prune(ctx context.Context, artifactID uuid.UUID, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	pruned, err := s.querier.PruneVersions(ctx, sqlc.PruneVersionsParams{
		ArtifactID: uuidToPgUUID(artifactID),
		Keep:       int32(keep),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune versions of %s: %w", artifactID, err)
	}
	if pruned > 0 {
		s.logger.Debug("pruned versions",
			"artifact_id", artifactID,
			"pruned", pruned,
			"keep", keep)
	}
	return pruned, nil
}

// Delete removes an artifact and its whole version history (CASCADE).
// Returns ErrNotFound if the artifact does not exist.
func (s *Store) Delete(ctx context.Context, artifactID uuid.UUID) error {
	affected, err := s.querier.DeleteArtifact(ctx, uuidToPgUUID(artifactID))
	if err != nil {
		return fmt.Errorf("failed to delete artifact %s: %w", artifactID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.logger.Debug("deleted artifact", "artifact_id", artifactID)
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sqlcArtifactToArtifact converts sqlc.Artifact to the application type.
func sqlcArtifactToArtifact(a sqlc.Artifact) *Artifact {
	out := &Artifact{
		ID:        pgUUIDToUUID(a.ID),
		SessionID: pgUUIDToUUID(a.SessionID),
		Type:      Type(a.Type),
		Title:     a.Title,
		CreatedAt: a.CreatedAt.Time,
		UpdatedAt: a.UpdatedAt.Time,
	}
	if a.Language != nil {
		out.Language = *a.Language
	}
	return out
}

// sqlcVersionToVersion converts sqlc.ArtifactVersion to the application type.
func sqlcVersionToVersion(v sqlc.ArtifactVersion) *Version {
	return &Version{
		ID:            pgUUIDToUUID(v.ID),
		ArtifactID:    pgUUIDToUUID(v.ArtifactID),
		VersionNumber: int(v.VersionNumber),
		Content:       v.Content,
		ContentHash:   v.ContentHash,
		Title:         v.Title,
		CreatedAt:     v.CreatedAt.Time,
	}
}

// uuidToPgUUID converts uuid.UUID to pgtype.UUID.
func uuidToPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// pgUUIDToUUID converts pgtype.UUID to uuid.UUID.
func pgUUIDToUUID(pgUUID pgtype.UUID) uuid.UUID {
	if !pgUUID.Valid {
		return uuid.Nil
	}
	return pgUUID.Bytes
}
