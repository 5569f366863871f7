package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rgehrsitz/fiplan/internal/domain"
)

// ProfileInfo describes a stored profile without its configuration.
type ProfileInfo struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigStore keeps named configuration profiles.
type ConfigStore interface {
	// Create stores a new profile. Returns ErrDuplicateKey if name exists.
	Create(ctx context.Context, name string, config *domain.Configuration) error

	// Save stores a profile, replacing any previous one with the same name.
	Save(ctx context.Context, name string, config *domain.Configuration) error

	// Load retrieves a profile. Returns ErrNotFound if not exists.
	Load(ctx context.Context, name string) (*domain.Configuration, error)

	// List returns every profile ordered by name.
	List(ctx context.Context) ([]ProfileInfo, error)

	// Delete removes a profile. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, name string) error
}

var profileName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidateProfile checks a profile name and configuration before storing them.
// Names double as file names, so only letters, digits, dot, dash and
// underscore are accepted.
func ValidateProfile(name string, config *domain.Configuration) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if config == nil {
		return fmt.Errorf("%w: configuration is required", ErrInvalidInput)
	}
	return nil
}

// ValidateName checks a profile name.
func ValidateName(name string) error {
	if !profileName.MatchString(name) {
		return fmt.Errorf("%w: profile name %q", ErrInvalidInput, name)
	}
	return nil
}
