// ABOUTME: Data migration between blob backends.
// ABOUTME: Copies the stored snapshot from source to destination unchanged.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// ErrDestinationNotEmpty is returned when the destination already holds a
// value under the key and overwriting was not requested.
var ErrDestinationNotEmpty = errors.New("destination already has data")

// MigrateSummary describes what a migration copied.
type MigrateSummary struct {
	Key   string
	Bytes int
}

// MigrateData copies the blob stored under key from src to dst. The bytes are
// copied verbatim, so unmodeled fields survive. Unless overwrite is set, the
// destination must not already hold the key.
func MigrateData(src, dst BlobStore, key string, overwrite bool) (*MigrateSummary, error) {
	data, err := src.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", key, err)
	}

	if !overwrite {
		_, err := dst.Get(key)
		switch {
		case err == nil:
			return nil, ErrDestinationNotEmpty
		case !errors.Is(err, ErrNotExist):
			return nil, fmt.Errorf("check destination %s: %w", key, err)
		}
	}

	if err := dst.Set(key, data); err != nil {
		return nil, fmt.Errorf("write destination %s: %w", key, err)
	}
	return &MigrateSummary{Key: key, Bytes: len(data)}, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
