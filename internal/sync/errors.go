// ABOUTME: Error kinds for the remote transfer client.
// ABOUTME: Distinguishes auth failures from missing backups and transport faults.
package sync

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated indicates a missing, expired, or rejected
// credential. Callers should prompt for re-authorization, not retry.
var ErrNotAuthenticated = errors.New("not authenticated - run 'gratis sync login'")

// ErrNoBackup indicates no backup file exists on the remote yet.
var ErrNoBackup = errors.New("no backup found on remote")

// TransferError wraps a network or remote-provider failure. No automatic
// retry; the caller re-triggers.
type TransferError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
