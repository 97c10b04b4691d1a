package portal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Record is the durable shadow of an authenticated session: enough to
// reconstruct the client without re-running the handshake.
type Record struct {
	PortalCookies string `json:"portal_cookies"`
	CSRF          string `json:"csrf"`
	ProfileID     string `json:"profile_id"`
}

// Store reads and writes the single session record at a fixed path.
type Store struct {
	path string
}

// NewStore creates a session store rooted at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the record, creating parent directories as needed.
// Callers on the login path treat failure as best-effort.
func (s *Store) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads and decodes the record. A missing file, an undecodable
// file, and a record without cookies are distinct conditions.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrNoSavedSession
		}
		return Record{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if rec.PortalCookies == "" {
		return Record{}, ErrEmptySession
	}
	return rec, nil
}

// Delete removes the record. Idempotent: an already absent file is not
// an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
