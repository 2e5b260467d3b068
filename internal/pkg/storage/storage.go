package storage

import (
	"context"
	"io"
)

// FileStorage is the photo artifact collaborator: it accepts an upload and
// returns a stable reference, deletes by reference, and derives a public
// read URL from a reference.
type FileStorage interface {
	// Upload stores the file and returns its reference (path/key).
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a stored file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// PublicURL returns the public read URL for a reference.
	PublicURL(path string) string

	// Exists checks whether a reference resolves to a stored file.
	Exists(ctx context.Context, path string) (bool, error)
}
