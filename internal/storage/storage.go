// Package storage provides dataset object storage abstractions.
package storage

import (
	"context"
	"errors"
)

// Common errors for storage operations.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrDownloadFailed = errors.New("download failed")
)

// DatasetStorage abstracts read access to dataset objects.
// Implementations include S3 and the local filesystem.
type DatasetStorage interface {
	// Fetch reads an object fully into memory.
	// objectPath is the path of the object within storage.
	Fetch(ctx context.Context, objectPath string) ([]byte, error)

	// Materialize ensures the object exists as a local file and returns
	// its filesystem path. scratchDir receives the file when a download
	// is needed; local storage returns the object's own path.
	// Used for sources that must be opened as files (SQLite).
	Materialize(ctx context.Context, objectPath, scratchDir string) (string, error)

	// Exists checks if an object exists in storage.
	Exists(ctx context.Context, objectPath string) (bool, error)

	// List returns all object paths under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
