// Package session tracks the set of artifacts open in one chat session.
//
// A session holds at most Capacity resident artifacts; opening another one
// evicts the least-recently-touched resident that is not currently active.
// Residency is working-set state only: evicting or closing an artifact never
// touches its persisted version history.
//
// At most one resident artifact is active at a time. The active pointer
// always names a resident entry or is empty.
//
// # Concurrency
//
// A Manager belongs to one logical session. Each mutating call (Open,
// SetActive, Close, SelectVersion) is applied atomically under a single
// writer lock, so a manager shared between a UI goroutine and a background
// sync task stays consistent.
//
// # Local State
//
// [StateFile] persists the resident/active snapshot under the state
// directory using atomic writes (temp file + rename) with file locking via
// [github.com/gofrs/flock], so concurrent processes sharing a session do not
// interleave partial writes.
package session
