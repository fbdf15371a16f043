// Package common defines shared constants and sentinel errors used across
// Studyos components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrStorage  = errors.New("storage unavailable")
	ErrNotFound = errors.New("not found")

	// Backup/import errors.
	ErrInvalidBundle = errors.New("invalid backup bundle")
)
