package services

import "errors"

// Error kinds surfaced by the service layer. Handlers decide the
// user-visible rendering; none of these are fatal to the process.
var (
	// ErrUsernameTaken is returned when registering a username that
	// already exists. The user table is left unchanged.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned for bad input (empty or oversized fields)
	// before anything is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when looking up posts for a username
	// that does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrStorageUnavailable wraps transient storage failures. These are
	// the only errors worth a bounded retry at the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
