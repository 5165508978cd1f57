// Package state provides the flat key-value store persisted under the user's
// home directory, plus keychain-backed secret storage.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const stateDirName = ".docwriter"

// Store is a write-through key-value store backed by a single JSON file.
// Values are flat strings, numbers, and booleans keyed by string.
type Store struct {
	path string
	mu   sync.Mutex
	data map[string]any
}

// DefaultPath returns ~/.docwriter/state.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, stateDirName, "state.json"), nil
}

// Open loads the store at path, starting empty when the file does not exist.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]any),
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s.data); err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", path, err)
	}
	return s, nil
}

// GetString returns the string stored under key, or def.
func (s *Store) GetString(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key].(string); ok {
		return v
	}
	return def
}

// GetInt returns the number stored under key, or def. JSON decoding yields
// float64 for numbers, so both forms are accepted.
func (s *Store) GetInt(key string, def int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch v := s.data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// GetBool returns the boolean stored under key, or def.
func (s *Store) GetBool(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key].(bool); ok {
		return v
	}
	return def
}

// Set stores value under key and writes the file through immediately.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
