package repository

import "errors"

var (
	// ErrConflict is returned when a write would collide with an existing key
	ErrConflict = errors.New("conflict: key already exists")

	// ErrCorrupt is returned when a stored row cannot be decoded
	ErrCorrupt = errors.New("corrupt stored record")
)
