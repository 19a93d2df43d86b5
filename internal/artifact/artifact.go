package artifact

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the artifact content type.
//
// The set is closed: dispatching code should switch exhaustively over these
// constants and treat anything else as a programming error (see ValidateType).
type Type string

const (
	TypeCode     Type = "code"
	TypeHTML     Type = "html"
	TypeReact    Type = "react"
	TypeSVG      Type = "svg"
	TypeMarkdown Type = "markdown"
	TypeMermaid  Type = "mermaid"
	TypeImage    Type = "image"
)

// ValidateType reports whether t is one of the known artifact types.
// Returns ErrInvalidType otherwise.
func ValidateType(t Type) error {
	switch t {
	case TypeCode, TypeHTML, TypeReact, TypeSVG, TypeMarkdown, TypeMermaid, TypeImage:
		return nil
	}
	return ErrInvalidType
}

// Artifact is the logical identity of one piece of generated content across
// its whole edit history.
//
// ID and Type are immutable after creation. Title evolves through versions;
// the value here mirrors the latest version's title for display.
//
// Zero values:
//   - ID: uuid.Nil (invalid, assigned on create)
//   - SessionID: uuid.Nil (invalid, required)
//   - Type: "" (invalid, must pass ValidateType)
//   - Language: "" (no language hint; only meaningful for TypeCode)
//   - Title: "" (untitled)
type Artifact struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Type      Type
	Language  string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version is one immutable snapshot of an artifact's content.
//
// (ArtifactID, VersionNumber) is unique. Numbers start at 1 and are strictly
// increasing with no gaps; a deduplicated save does not consume a number.
type Version struct {
	ID            uuid.UUID
	ArtifactID    uuid.UUID
	VersionNumber int
	Content       string
	ContentHash   string
	Title         string
	CreatedAt     time.Time
}
