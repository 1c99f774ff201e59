package storage

import "errors"

var (
	// ErrNotFound indicates the referenced conversation or habit log does
	// not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable indicates the storage file could not be opened or
	// written. Fatal to the process; callers should surface it immediately.
	ErrUnavailable = errors.New("storage unavailable")
)
