package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"studyspace-client/internal/core/domain"
)

// FileStore persists the session to a JSON file so CLI invocations share a
// login. Writes go through a temp file and rename so a crash never leaves a
// half-written session behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type sessionFile struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Token    string `json:"token"`
}

// NewFileStore creates a session store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Session{}, nil
		}
		return domain.Session{}, err
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		// Corrupt session file means logged out, not a crash
		return domain.Session{}, nil
	}

	return normalize(domain.Session{
		Username: f.Username,
		FullName: f.FullName,
		Token:    f.Token,
	}), nil
}

func (s *FileStore) Write(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(sessionFile{
		Username: session.Username,
		FullName: session.FullName,
		Token:    session.Token,
	})
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
