// ABOUTME: Error values and types returned by the storage layer.
// ABOUTME: Callers distinguish kinds via errors.Is / errors.As.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when operating on an id that does not exist.
// It is always wrapped with the operation name and id for context.
var ErrNotFound = errors.New("not found")

// PartialFailureError is returned when a destructive restore fails after
// the clear phase has begun. The restore runs inside a transaction, so on
// rollback the store is left untouched; if the rollback itself cannot be
// confirmed the error still signals possible data loss, which is why it
// is a distinct type from plain validation failures.
type PartialFailureError struct {
	Op  string
	Err error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("restore %s: %v", e.Op, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
