package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mph-llm-experiments/adate/internal/model"
)

const stateVersion = "0.1.0"

// StateData represents the on-disk state file.
type StateData struct {
	Last        *model.Submission `json:"last,omitempty"`
	Submissions int               `json:"submissions"`
	Version     string            `json:"version"`
}

// Store keeps the last submitted form values between runs.
type Store struct {
	StateData
	mu       sync.Mutex
	filePath string
}

// Open loads the state file at path. A missing file yields an empty store;
// the file is created on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{
		StateData: StateData{Version: stateVersion},
		filePath:  path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.StateData); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if s.Version == "" {
		s.Version = stateVersion
	}
	return s, nil
}

// Path returns the file the store writes to.
func (s *Store) Path() string { return s.filePath }

// Value returns the last submitted value of the named field.
func (s *Store) Value(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Last == nil {
		return "", false
	}
	v, ok := s.Last.Values[name]
	return v, ok
}

// Save records sub as the last submission and writes the file.
func (s *Store) Save(sub model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.Last
	s.Last = &sub
	s.Submissions++

	if err := s.save(); err != nil {
		s.Last = prev
		s.Submissions--
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.StateData, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}
