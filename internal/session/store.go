package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/helpdesk-tools/deskctl/internal/model"
)

const sessionFile = "session.json"

// Store is the single source of truth for who is using the application.
// Current returns (nil, nil) when no session exists; a missing or corrupt
// persisted session reads as anonymous, never as an error.
type Store interface {
	Set(sess *model.Session) error
	Clear() error
	Current() (*model.Session, error)
}

// FileStore implements Store using a JSON file. Writes are write-through:
// the file is rewritten on every Set and removed on Clear, so a later
// process reconstructs exactly the last-set session.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at ~/.deskctl.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFileStoreAt(filepath.Join(home, ".deskctl"))
}

// NewFileStoreAt creates a FileStore rooted at the given directory.
func NewFileStoreAt(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, sessionFile)}, nil
}

// Set replaces the current session unconditionally. There are no merge
// semantics.
func (s *FileStore) Set(sess *model.Session) error {
	if sess == nil {
		return fmt.Errorf("cannot store a nil session")
	}
	if !sess.Role.Valid() {
		return fmt.Errorf("cannot store session with unknown role %q", sess.Role)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the current session and its persisted copy.
func (s *FileStore) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}

// Current returns the persisted session, or (nil, nil) when anonymous.
// A file that cannot be read or parsed is treated as anonymous.
func (s *FileStore) Current() (*model.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, nil
	}
	if !sess.Role.Valid() || sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}
