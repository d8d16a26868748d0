// Package storage is the key-value persistence collaborator: session
// tokens, the modify-bot draft, and preferences live here. The wizard
// core never touches storage directly; it is handed hydration data and
// emits data to persist.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys.
const (
	DraftBotKey    = "modify_bot_draft"
	AuthTokenKey   = "auth_token"
	EnvironmentKey = "environment"
	ThemePrefKey   = "theme_preference"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a file-backed JSON key-value store. Writes go through a
// temporary file and an atomic rename so a crash never leaves a partial
// file behind.
type Store struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]json.RawMessage
}

// Open loads the store at filePath, creating an empty one when the file
// does not exist yet.
func Open(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "botwizard_state.json"
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	s := &Store{
		filePath: filePath,
		values:   make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return s, nil
}

// Get unmarshals the value stored under key into out.
func (s *Store) Get(key string, out interface{}) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode value for %q: %w", key, err)
	}
	return nil
}

// Set stores value under key and flushes to disk.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return s.flush()
}

// Remove deletes key and flushes to disk. Removing an absent key is a
// no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// Has reports whether key holds a value.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary store file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to commit store file: %w", err)
	}
	return nil
}
