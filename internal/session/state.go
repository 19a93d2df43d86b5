package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const stateDirPerm = 0750

// StateFile persists one session's artifact state to local disk so a
// restarted process can restore its working set. Writes are atomic (temp
// file + rename) and serialized across processes with an advisory file
// lock.
type StateFile struct {
	path string
	lock *flock.Flock
}

// NewStateFile creates a StateFile rooted at dir for the given session.
// The directory is created if it does not exist.
func NewStateFile(dir string, sessionID uuid.UUID) (*StateFile, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("session id is required")
	}
	if err := os.MkdirAll(dir, stateDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	base := filepath.Join(dir, sessionID.String())
	return &StateFile{
		path: base + ".json",
		lock: flock.New(base + ".lock"),
	}, nil
}

// Path returns the location of the state file.
func (f *StateFile) Path() string {
	return f.path
}

// Save writes the snapshot atomically.
func (f *StateFile) Save(state State) error {
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Load reads the last saved snapshot.
//
// Returns (nil, nil) if no state has been saved; a missing file is not an
// error.
func (f *StateFile) Load() (*State, error) {
	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("invalid state file: %w", err)
	}
	return &state, nil
}

// Clear removes the state file. Idempotent: clearing absent state is not an
// error.
func (f *StateFile) Clear() error {
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
