// Package artifact provides generated-content artifact management for easel.
//
// An artifact is the logical identity of one piece of assistant-generated,
// re-editable content (a code file, an HTML page, a React component). Every
// edit produces a new immutable Version row; content is never mutated in
// place. Versions store full content, not diffs, so retrieval is O(1).
//
// Duplicate submissions are detected by SHA-256 content hash: saving content
// identical to the latest version is an idempotent no-op that returns the
// existing version rather than appending history.
//
// Thread Safety: Store is safe for concurrent use. Version numbers are
// assigned inside a transaction that locks the artifact row with
// SELECT ... FOR UPDATE, so two concurrent saves of the same artifact can
// never receive the same number or leave a gap.
//
// Lifecycle: Artifact and Version rows persist independently of session
// residency; closing an artifact in a session does not delete its history.
package artifact
