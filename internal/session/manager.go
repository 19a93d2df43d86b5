package session

import (
	"container/list"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/easelhq/easel/internal/artifact"
)

// DefaultCapacity is the default bound on concurrently resident artifacts.
const DefaultCapacity = 5

// Entry is one resident artifact: the identity fields a UI needs plus the
// version currently selected for display. VersionNumber is a pointer into
// the artifact's history, not the history itself; reverting to an older
// version is just a change of this field (see Manager.SelectVersion).
type Entry struct {
	ArtifactID    uuid.UUID     `json:"artifact_id"`
	Type          artifact.Type `json:"type"`
	Title         string        `json:"title"`
	VersionNumber int           `json:"version_number"`
}

// State is a point-in-time snapshot of a session's resident set, suitable
// for persistence via StateFile. Artifacts are ordered most recently
// touched first.
type State struct {
	SessionID        uuid.UUID `json:"session_id"`
	Artifacts        []Entry   `json:"artifacts"`
	ActiveArtifactID uuid.UUID `json:"active_artifact_id"`
}

// Manager tracks the artifacts open in one chat session and enforces the
// residency bound with LRU eviction. The zero value is not useful; construct
// with NewManager.
type Manager struct {
	mu       sync.Mutex
	capacity int
	entries  map[uuid.UUID]*list.Element // values are *Entry
	order    *list.List                  // front = most recently touched
	active   uuid.UUID
	logger   *slog.Logger
}

// NewManager creates a Manager with the given capacity.
// capacity <= 0 falls back to DefaultCapacity; logger nil falls back to
// slog.Default().
func NewManager(capacity int, logger *slog.Logger) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		capacity: capacity,
		entries:  make(map[uuid.UUID]*list.Element),
		order:    list.New(),
		logger:   logger,
	}
}

// Open inserts an artifact into the resident set, or refreshes its entry and
// recency if it is already resident.
//
// When the set is full and the artifact is genuinely new, the
// least-recently-touched entry that is not the active one is evicted first.
// Returns ErrNoEvictable if every resident entry is active (only reachable
// with a misconfigured capacity of 1).
func (m *Manager) Open(e Entry) error {
	if e.ArtifactID == uuid.Nil {
		return fmt.Errorf("artifact id is required")
	}
	if err := artifact.ValidateType(e.Type); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[e.ArtifactID]; ok {
		*el.Value.(*Entry) = e
		m.order.MoveToFront(el)
		return nil
	}

	if m.order.Len() >= m.capacity {
		if err := m.evictLocked(); err != nil {
			return err
		}
	}

	m.entries[e.ArtifactID] = m.order.PushFront(&e)
	m.logger.Debug("opened artifact",
		"artifact_id", e.ArtifactID,
		"resident", m.order.Len())
	return nil
}

// evictLocked removes the least-recently-touched non-active entry.
// Caller holds m.mu.
func (m *Manager) evictLocked() error {
	for el := m.order.Back(); el != nil; el = el.Prev() {
		entry := el.Value.(*Entry)
		if entry.ArtifactID == m.active {
			continue
		}
		m.order.Remove(el)
		delete(m.entries, entry.ArtifactID)
		m.logger.Debug("evicted artifact", "artifact_id", entry.ArtifactID)
		return nil
	}
	return ErrNoEvictable
}

// SetActive marks a resident artifact as the active one and refreshes its
// recency. Returns ErrNotResident if the artifact is not open.
func (m *Manager) SetActive(artifactID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[artifactID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotResident, artifactID)
	}
	m.active = artifactID
	m.order.MoveToFront(el)
	return nil
}

// Active returns the active entry, or false when no artifact is active.
func (m *Manager) Active() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[m.active]
	if !ok {
		return Entry{}, false
	}
	return *el.Value.(*Entry), true
}

// Close removes an artifact from the resident set. If it was active, the
// active pointer becomes empty; picking a successor is a UI decision, not
// enforced here. Returns ErrNotResident if the artifact is not open.
func (m *Manager) Close(artifactID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[artifactID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotResident, artifactID)
	}
	m.order.Remove(el)
	delete(m.entries, artifactID)
	if m.active == artifactID {
		m.active = uuid.Nil
	}
	m.logger.Debug("closed artifact", "artifact_id", artifactID)
	return nil
}

// SelectVersion points a resident artifact at an existing version, e.g. to
// display a reverted state. This is selection only: history is untouched,
// and making the selected content the newest version requires an explicit
// artifact.Store.CreateVersion with that content.
func (m *Manager) SelectVersion(artifactID uuid.UUID, versionNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[artifactID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotResident, artifactID)
	}
	el.Value.(*Entry).VersionNumber = versionNumber
	return nil
}

// Resident returns the resident entries, most recently touched first.
func (m *Manager) Resident() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, m.order.Len())
	for el := m.order.Front(); el != nil; el = el.Next() {
		entries = append(entries, *el.Value.(*Entry))
	}
	return entries
}

// IsResident reports whether an artifact is currently open in the session.
func (m *Manager) IsResident(artifactID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[artifactID]
	return ok
}

// Len returns the number of resident artifacts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// State snapshots the manager for persistence. The entries and the active
// id are read under one lock acquisition so the snapshot is internally
// consistent even with concurrent mutation.
func (m *Manager) State(sessionID uuid.UUID) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, m.order.Len())
	for el := m.order.Front(); el != nil; el = el.Next() {
		entries = append(entries, *el.Value.(*Entry))
	}
	return State{
		SessionID:        sessionID,
		Artifacts:        entries,
		ActiveArtifactID: m.active,
	}
}

// Restore replaces the manager's contents from a snapshot. Entries beyond
// the capacity are dropped from the least-recent end; an active id that is
// not resident after the restore is cleared.
func (m *Manager) Restore(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[uuid.UUID]*list.Element)
	m.order.Init()
	m.active = uuid.Nil

	for _, e := range state.Artifacts {
		if m.order.Len() >= m.capacity {
			break
		}
		entry := e
		m.entries[entry.ArtifactID] = m.order.PushBack(&entry)
	}
	if _, ok := m.entries[state.ActiveArtifactID]; ok {
		m.active = state.ActiveArtifactID
	}
}
