package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/storage"
)

const profileExt = ".yaml"

// ConfigStore implements storage.ConfigStore with one YAML file per profile.
type ConfigStore struct {
	dir    string
	parser *config.InputParser
	writer *config.Writer
}

// NewConfigStore creates a store rooted at dir, creating it when missing.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}
	return &ConfigStore{
		dir:    dir,
		parser: config.NewInputParser(),
		writer: config.NewWriter(),
	}, nil
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

// Dir returns the profile directory.
func (s *ConfigStore) Dir() string {
	return s.dir
}

func (s *ConfigStore) path(name string) string {
	return filepath.Join(s.dir, name+profileExt)
}

// Create writes a new profile file. Returns ErrDuplicateKey if it exists.
func (s *ConfigStore) Create(ctx context.Context, name string, cfg *domain.Configuration) error {
	return s.write(ctx, name, cfg, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

// Save writes a profile file, replacing an existing one.
func (s *ConfigStore) Save(ctx context.Context, name string, cfg *domain.Configuration) error {
	return s.write(ctx, name, cfg, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func (s *ConfigStore) write(ctx context.Context, name string, cfg *domain.Configuration, flag int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateProfile(name, cfg); err != nil {
		return err
	}

	data, err := s.writer.Marshal(cfg, config.FormatYAML)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", name, err)
	}

	f, err := os.OpenFile(s.path(name), flag, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("open profile %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write profile %s: %w", name, err)
	}
	return f.Close()
}

// Load parses a profile file. Returns ErrNotFound if not exists.
func (s *ConfigStore) Load(ctx context.Context, name string) (*domain.Configuration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read profile %s: %w", name, err)
	}
	cfg, err := s.parser.Parse(data, config.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", name, err)
	}
	return cfg, nil
}

// List returns the profiles found in the directory, sorted by name.
func (s *ConfigStore) List(ctx context.Context) ([]storage.ProfileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read profile directory: %w", err)
	}

	result := make([]storage.ProfileInfo, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), profileExt)
		if entry.IsDir() || !ok || storage.ValidateName(name) != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat profile %s: %w", name, err)
		}
		result = append(result, storage.ProfileInfo{Name: name, UpdatedAt: info.ModTime()})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Delete removes a profile file. Returns ErrNotFound if not exists.
func (s *ConfigStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("delete profile %s: %w", name, err)
	}
	return nil
}
