package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/storage"
)

type profile struct {
	config    *domain.Configuration
	updatedAt time.Time
}

// ConfigStore is an in-memory implementation of storage.ConfigStore.
type ConfigStore struct {
	mu       sync.RWMutex
	profiles map[string]profile // keyed by profile name

	// Now stamps saved profiles, time.Now when nil.
	Now func() time.Time
}

// NewConfigStore creates a new in-memory profile store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		profiles: make(map[string]profile),
	}
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

// Create adds a new profile. Returns ErrDuplicateKey if name exists.
func (s *ConfigStore) Create(_ context.Context, name string, config *domain.Configuration) error {
	if err := storage.ValidateProfile(name, config); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[name]; exists {
		return storage.ErrDuplicateKey
	}
	s.profiles[name] = profile{config: config.DeepCopy(), updatedAt: s.now()}
	return nil
}

// Save stores a profile, replacing an existing one.
func (s *ConfigStore) Save(_ context.Context, name string, config *domain.Configuration) error {
	if err := storage.ValidateProfile(name, config); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[name] = profile{config: config.DeepCopy(), updatedAt: s.now()}
	return nil
}

// Load retrieves a copy of a profile. Returns ErrNotFound if not exists.
func (s *ConfigStore) Load(_ context.Context, name string) (*domain.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.profiles[name]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return p.config.DeepCopy(), nil
}

// List returns all profiles sorted by name.
func (s *ConfigStore) List(_ context.Context) ([]storage.ProfileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.ProfileInfo, 0, len(s.profiles))
	for name, p := range s.profiles {
		result = append(result, storage.ProfileInfo{Name: name, UpdatedAt: p.updatedAt})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Delete removes a profile. Returns ErrNotFound if not exists.
func (s *ConfigStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[name]; !exists {
		return storage.ErrNotFound
	}
	delete(s.profiles, name)
	return nil
}

func (s *ConfigStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
