// Package recorder journals play sessions: it listens to a machine and
// writes actions, undos and phase changes to the database and a JSONL log.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/cubie/internal/storage"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath          string `json:"db_path"`
	ActiveSessionID string `json:"active_session_id,omitempty"`
	StabilizeMs     int    `json:"stabilize_ms,omitempty"`
	ShuffleCount    int    `json:"shuffle_count,omitempty"`
	MetricsAddr     string `json:"metrics_addr,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// DefaultLogDir returns the directory session logs are written to.
func DefaultLogDir() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// NewStateFile creates a new state file manager.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	// Try to load existing state
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file %s: %w", sf.path, err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Path returns the state file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// Update applies fn to the state and saves it.
func (sf *StateFile) Update(fn func(*AppState)) error {
	fn(&sf.state)
	return sf.Save()
}

// SetActiveSession sets the active session ID.
func (sf *StateFile) SetActiveSession(sessionID string) error {
	sf.state.ActiveSessionID = sessionID
	return sf.Save()
}

// ClearActiveSession clears the active session ID.
func (sf *StateFile) ClearActiveSession() error {
	sf.state.ActiveSessionID = ""
	return sf.Save()
}

// HasActiveSession returns true if a session was left open.
func (sf *StateFile) HasActiveSession() bool {
	return sf.state.ActiveSessionID != ""
}

// DBPath returns the database path.
func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}
