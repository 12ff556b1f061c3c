package store

import (
	"github.com/pkg/errors"
)

// StorageError reports a failure of the backing database. It is never
// retried by the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err, or any error it wraps, is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// WrapError marks err as a storage failure of op. Nil stays nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
