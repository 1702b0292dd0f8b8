package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, tampered, expired and unmatched tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrTransient marks store timeouts and connection failures. Callers may retry once.
	ErrTransient = errors.New("transient store error")

	ErrMismatch = fmt.Errorf("passwords do not match: %w", ErrValidation)
)
