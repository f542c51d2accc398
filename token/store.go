package token

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultFileName is the cache file created in the user's home directory
// when no explicit path is configured.
const DefaultFileName = ".42_token.json"

// Store is the persistence layer for the single cached token. Load never
// fails: anything that prevents producing a usable Record (missing file,
// unreadable content, wrong schema) is reported as absent so callers fall
// back to a fresh exchange.
type Store interface {
	Save(record *Record) error
	Load() (*Record, bool)
	Clear() error
	Exists() bool
}

// FileStore persists the record as a single JSON object at a fixed path.
// There is no cross-process locking: concurrent writers race and the last
// write wins, which is acceptable for a single-user, single-slot cache.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a Store backed by the given file. An empty path
// selects DefaultFileName in the user's home directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "[NewFileStore] resolve home directory")
		}
		path = filepath.Join(home, DefaultFileName)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// Save overwrites the cache with the given record. The record is written
// to a temp file and renamed into place so a crash never leaves a
// truncated cache behind.
func (s *FileStore) Save(record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal record")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "[FileStore.Save] create cache directory")
		}
	}
	tmp := s.path + ".tmp." + uuid.NewString()
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write temp file")
	}
	if err = os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "[FileStore.Save] replace cache file")
	}
	return nil
}

// Load reads the cached record. Absent covers a missing or unreadable
// file, invalid JSON and a record without an access token; none of these
// are errors, they are cache misses. Optional fields missing from the
// file fall back to the same defaults the exchange applies.
func (s *FileStore) Load() (*Record, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}
	var record Record
	if err = json.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	if record.AccessToken == "" {
		return nil, false
	}
	if record.TokenType == "" {
		record.TokenType = DefaultTokenType
	}
	if record.ExpiresIn == 0 {
		record.ExpiresIn = DefaultExpiresIn
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}
	return &record, true
}

// Clear removes the cache file. Clearing an absent cache is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove cache file")
	}
	return nil
}

// Exists reports whether the cache file is present. Presence says nothing
// about validity; a corrupted cache file still exists.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
