package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/common"
)

// FileStore keeps the two session entries as files under a state directory,
// one file per key.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

// Save persists both entries, overwriting any prior values.
func (s *FileStore) Save(token string, user *models.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}
	if err := os.WriteFile(s.path(TokenKey), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(s.path(UserKey), data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Load returns the stored pair only when both entries are present and the
// profile parses. A profile that fails to parse wipes the store before
// reporting the session as absent.
func (s *FileStore) Load() (string, *models.User, error) {
	tokenBytes, err := os.ReadFile(s.path(TokenKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, common.ErrNoSession
		}
		return "", nil, fmt.Errorf("read token: %w", err)
	}
	userBytes, err := os.ReadFile(s.path(UserKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, common.ErrNoSession
		}
		return "", nil, fmt.Errorf("read profile: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(userBytes, &user); err != nil {
		_ = s.Clear()
		return "", nil, common.ErrNoSession
	}
	return string(tokenBytes), &user, nil
}

// Clear removes both entries. Missing entries are not an error.
func (s *FileStore) Clear() error {
	for _, key := range []string{TokenKey, UserKey} {
		if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}
