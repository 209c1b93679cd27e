package domain

import (
	"errors"
	"fmt"
)

// ConfirmationToken is the only accepted confirmation value for destructive
// operations. Case-sensitive; external contract.
const ConfirmationToken = "DELETE"

var (
	// ErrStaleState means the tenant's status changed between the caller's
	// read and the commit. Retry with a fresh read.
	ErrStaleState = errors.New("tenant status changed concurrently, retry with a fresh read")

	// ErrConfirmationMismatch blocks a destructive operation whose supplied
	// confirmation token did not byte-equal the expected literal.
	ErrConfirmationMismatch = errors.New("confirmation token mismatch")

	// ErrLastAdminProtection refuses to delete the last remaining
	// administrator of an active tenant.
	ErrLastAdminProtection = errors.New("cannot delete the last administrator of an active tenant")

	// ErrPartialFailure means a cascade deletion aborted partway or exceeded
	// its deadline. Nothing was committed.
	ErrPartialFailure = errors.New("cascade deletion did not complete")

	// ErrTimeout means the operation could not commit within its deadline.
	// Retryable.
	ErrTimeout = errors.New("operation timed out")

	// ErrReasonRequired means the transition demands a non-empty reason.
	ErrReasonRequired = errors.New("a reason is required for this transition")

	ErrNotFound = errors.New("not found")
)

// InvalidTransitionError names both the current and the requested status of a
// transition that is not in the allowed table.
type InvalidTransitionError struct {
	Current   TenantStatus
	Requested TenantStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.Current, e.Requested)
}

// PersistenceError wraps a storage failure. A PersistenceError during an
// audit write aborts the whole transition.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
