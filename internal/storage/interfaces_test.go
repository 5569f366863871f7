package storage

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	for _, name := range []string{"base", "plan-2025", "lean_fire.v2", "A"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", "../etc", "with space", ".hidden", "a/b"} {
		err := ValidateName(name)
		assert.True(t, errors.Is(err, ErrInvalidInput), name)
	}
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile("base", &domain.Configuration{}))
	assert.ErrorIs(t, ValidateProfile("base", nil), ErrInvalidInput)
	assert.ErrorIs(t, ValidateProfile("", &domain.Configuration{}), ErrInvalidInput)
}
