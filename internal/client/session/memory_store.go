package session

import (
	"sync"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/common"
)

// MemoryStore is a non-durable Store used in tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *models.User
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.token, s.user, s.set = token, &u, true
	return nil
}

func (s *MemoryStore) Load() (string, *models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", nil, common.ErrNoSession
	}
	u := *s.user
	return s.token, &u, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user, s.set = "", nil, false
	return nil
}
