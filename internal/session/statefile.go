package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Persisted state keys. These survive a console restart so a page
// reload does not force a re-login.
const (
	keyToken           = "token"
	keyUserEmail       = "userEmail"
	keyUserRole        = "userRole"
	keyIsAuthenticated = "isAuthenticated"
)

// StateFile is a small file-backed key/value store for session
// fields. Writes go through a temp file and rename so the state is
// replaced atomically; logout can therefore never leave a token
// behind without its companion fields.
type StateFile struct {
	path string
	mu   sync.Mutex
}

// NewStateFile creates a state file store at the given path
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Load reads the persisted state; a missing file is an empty state
func (f *StateFile) Load() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := map[string]string{}
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt state file is treated as logged out rather than
		// blocking startup
		return map[string]string{}, nil
	}
	return state, nil
}

// Save replaces the persisted state atomically
func (f *StateFile) Save(state map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Clear removes all persisted state in one step
func (f *StateFile) Clear() error {
	return f.Save(map[string]string{})
}
