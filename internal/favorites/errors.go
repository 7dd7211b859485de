package favorites

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the selected backend is unsupported on this
	// target or failed to initialize.
	ErrStorageUnavailable = errors.New("favorites unavailable on this platform")

	// ErrInvalidBook is returned when a book without an identifier is added.
	ErrInvalidBook = errors.New("book id is required")
)

// StorageWriteError reports a write that failed after the backend was
// confirmed available.
type StorageWriteError struct {
	Op  string
	Err error
}

func (e *StorageWriteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("favorites %s failed", e.Op)
	}
	return fmt.Sprintf("favorites %s failed: %v", e.Op, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
