package postgres

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/storage"
)

// ConfigStore implements storage.ConfigStore using PostgreSQL.
// Configurations are kept as JSONB in their JSON file form.
type ConfigStore struct {
	pool   *Pool
	parser *config.InputParser
	writer *config.Writer
}

// NewConfigStore creates a new ConfigStore.
func NewConfigStore(pool *Pool) *ConfigStore {
	return &ConfigStore{
		pool:   pool,
		parser: config.NewInputParser(),
		writer: config.NewWriter(),
	}
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

func (s *ConfigStore) encode(name string, cfg *domain.Configuration) (string, error) {
	if err := storage.ValidateProfile(name, cfg); err != nil {
		return "", err
	}
	data, err := s.writer.Marshal(cfg, config.FormatJSON)
	if err != nil {
		return "", fmt.Errorf("encode profile %s: %w", name, err)
	}
	return string(data), nil
}

// Create inserts a new profile. Returns ErrDuplicateKey if name exists.
func (s *ConfigStore) Create(ctx context.Context, name string, cfg *domain.Configuration) error {
	doc, err := s.encode(name, cfg)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (name, config)
		VALUES ($1, $2)
	`

	if _, err := s.pool.Exec(ctx, query, name, doc); err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Save upserts a profile.
func (s *ConfigStore) Save(ctx context.Context, name string, cfg *domain.Configuration) error {
	doc, err := s.encode(name, cfg)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (name, config)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET config = EXCLUDED.config, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, name, doc); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Load retrieves a profile. Returns ErrNotFound if not exists.
func (s *ConfigStore) Load(ctx context.Context, name string) (*domain.Configuration, error) {
	query := `
		SELECT config
		FROM profiles
		WHERE name = $1
	`

	var doc []byte
	if err := s.pool.QueryRow(ctx, query, name).Scan(&doc); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	cfg, err := s.parser.Parse(doc, config.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", name, err)
	}
	return cfg, nil
}

// List returns all profiles ordered by name.
func (s *ConfigStore) List(ctx context.Context) ([]storage.ProfileInfo, error) {
	query := `
		SELECT name, updated_at
		FROM profiles
		ORDER BY name
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	result := make([]storage.ProfileInfo, 0)
	for rows.Next() {
		var info storage.ProfileInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return result, nil
}

// Delete removes a profile. Returns ErrNotFound if not exists.
func (s *ConfigStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
