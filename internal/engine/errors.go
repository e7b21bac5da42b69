package engine

import "errors"

var (
	// ErrNotFound indicates the scan root does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotDirectory indicates the scan root is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)
