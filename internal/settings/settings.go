// Package settings persists the shell preferences. This state is
// orthogonal to the portal session: it has its own lock and no
// ordering dependency on authentication.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/uomtools/sisgate/internal/logging"
	"go.uber.org/zap"
)

// Settings is the on-disk record.
type Settings struct {
	KeepInTray bool `json:"keep_in_tray"`
}

// Store holds the current settings behind a mutex and mirrors them to
// a JSON file.
type Store struct {
	mu      sync.Mutex
	path    string
	current Settings
	log     *logging.Logger
}

// NewStore creates a settings store, loading any persisted record.
// A missing or unreadable file silently yields defaults.
func NewStore(path string, log *logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Store{path: path, log: log}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &s.current); err != nil {
			s.log.Warn("settings file unreadable, using defaults", zap.Error(err))
			s.current = Settings{}
		}
	}
	return s
}

// KeepInTray returns the keep-in-tray flag.
func (s *Store) KeepInTray() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.KeepInTray
}

// SetKeepInTray updates the flag and persists the record.
func (s *Store) SetKeepInTray(value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.KeepInTray = value
	return s.persist()
}

// persist writes the record; callers hold the lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
