package storage

import "errors"

// Storage errors shared by every profile store.
var (
	// ErrNotFound is returned when a requested profile does not exist.
	ErrNotFound = errors.New("profile not found")

	// ErrDuplicateKey is returned by Create when the profile name is taken.
	ErrDuplicateKey = errors.New("duplicate key: profile already exists")

	// ErrInvalidInput is returned when a profile name or configuration is unusable.
	ErrInvalidInput = errors.New("invalid input")
)
