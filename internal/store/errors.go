// ABOUTME: Error values returned by store operations.
// ABOUTME: Import failures reuse the transfer package's kinds.
package store

import (
	"errors"

	"github.com/harperreed/mtbmaint/internal/transfer"
)

var (
	// ErrNotFound is returned by lookups. Mutations on missing ids are no-ops instead.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when a reference matches more than one record.
	ErrAmbiguous = errors.New("ambiguous reference")
	// ErrPersistence wraps blob store failures during a write.
	ErrPersistence = errors.New("persistence failure")

	ErrParse         = transfer.ErrParse
	ErrInvalidFormat = transfer.ErrInvalidFormat
)
