package domain

import "github.com/pkg/errors"

var (
	ErrSlugTaken    = errors.New("slug already exists")
	ErrNotFound     = errors.New("link not found")
	ErrStorage      = errors.New("storage failed")
	ErrFileFormat   = errors.New("file format not allowed")
	ErrMissingField = errors.New("missing field")
	ErrInvalidSlug  = errors.New("invalid slug")
)

// StorageError is any durable-store or blob-store failure. The cause is kept
// for logs and never shown to clients.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return e.Op + ": " + ErrStorage.Error() + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
