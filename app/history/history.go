// Package history keeps the commands a user has copied, with favorites.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLimit caps the number of stored entries when none is configured.
const DefaultLimit = 50

// fileName is the name of the file used to store the history.
const fileName = "history.json"

// Entry is one copied command.
type Entry struct {
	Command    string `json:"command"`
	IsFavorite bool   `json:"isFavorite"`
	Uses       int    `json:"uses"`
	Timestamp  int64  `json:"timestamp"` // last copy, unix seconds
}

// Store holds the history entries, oldest first.
// It uses a mutex so the TUI and commands can share one instance.
type Store struct {
	Entries      []Entry `json:"entries"`
	GlobalUsages int     `json:"globalUsages"`

	path  string
	limit int
	now   func() time.Time
	mu    sync.RWMutex
}

// DefaultPath returns ~/.config/psb/history.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "psb", fileName), nil
}

// Load reads the history at path. A missing file yields an empty store;
// nothing is written until Save. A limit below one means DefaultLimit.
func Load(path string, limit int) (*Store, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	s := &Store{Entries: []Entry{}, path: path, limit: limit, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("error reading history file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("error unmarshalling history file %s: %w", path, err)
	}
	if s.Entries == nil {
		s.Entries = []Entry{}
	}
	s.trim()
	return s, nil
}

// Path returns the file the store saves to.
func (s *Store) Path() string { return s.path }

// Save writes the store to disk, creating the parent directory.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("error marshalling history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("could not create history directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0640); err != nil {
		return fmt.Errorf("error writing history file %s: %w", s.path, err)
	}
	return nil
}

// Record adds a copied command, or moves an existing one to the newest
// position and bumps its use count. Blank commands are ignored.
func (s *Store) Record(command string) {
	if command == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{Command: command}
	if i := s.index(command); i >= 0 {
		entry = s.Entries[i]
		s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
	}
	entry.Uses++
	entry.Timestamp = s.now().Unix()
	s.Entries = append(s.Entries, entry)
	s.GlobalUsages++
	s.trim()
}

// ToggleFavorite flips the favorite flag of a stored command and returns the
// new value. Unknown commands report false.
func (s *Store) ToggleFavorite(command string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(command)
	if i < 0 {
		return false
	}
	s.Entries[i].IsFavorite = !s.Entries[i].IsFavorite
	return s.Entries[i].IsFavorite
}

// Remove deletes a command. It reports whether anything was removed.
func (s *Store) Remove(command string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(command)
	if i < 0 {
		return false
	}
	s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
	return true
}

// List returns a copy of the entries, newest last.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.Entries...)
}

// Favorites returns the favorite entries, newest last.
func (s *Store) Favorites() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.Entries {
		if e.IsFavorite {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) index(command string) int {
	for i, e := range s.Entries {
		if e.Command == command {
			return i
		}
	}
	return -1
}

// trim drops the oldest non-favorite entries beyond the limit. Favorites are
// only dropped when they alone exceed it.
func (s *Store) trim() {
	for len(s.Entries) > s.limit {
		drop := 0
		for i, e := range s.Entries {
			if !e.IsFavorite {
				drop = i
				break
			}
		}
		s.Entries = append(s.Entries[:drop], s.Entries[drop+1:]...)
	}
}
