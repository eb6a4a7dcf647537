package repositories

import "errors"

// Sentinel errors returned by every repository implementation so that
// services can branch on the failure kind without knowing the storage engine.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
