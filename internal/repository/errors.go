package repository

import "errors"

// Sentinel errors surfaced by the store. Callers match with errors.Is.
var (
	// ErrUserNotFound indicates no user row matched the given id.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates the UNIQUE email constraint rejected an insert.
	ErrEmailTaken = errors.New("email already registered")
)
