package images

import "context"

// Store port (interface for the blob store).
type Store interface {
	// Validate rejects paths outside the allowed prefix without any I/O.
	Validate(path string) error

	// Fetch returns the raw bytes at path. Callers are expected to have
	// validated the path first; implementations still reject invalid paths.
	Fetch(ctx context.Context, path string) ([]byte, error)
}
