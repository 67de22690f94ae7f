package entry

import "errors"

// Error types for repository operations.
var (
	// ErrNotFound is returned when no live, active row exists for the key.
	ErrNotFound = errors.New("entry not found")

	// ErrConflict is returned when the live row's version moved between the
	// caller's read and its write (optimistic lock failure). The store is
	// unchanged; callers may re-read and retry.
	ErrConflict = errors.New("entry was modified concurrently")

	// ErrWriteFailed is returned when a single-row write fails.
	ErrWriteFailed = errors.New("entry write failed")

	// ErrTransactionFailed is returned when the snapshot-and-update
	// transaction fails. The transaction is all-or-nothing: the prior state
	// is intact.
	ErrTransactionFailed = errors.New("entry transaction failed")

	// ErrDeleteFailed is returned when the delete path fails. Kept distinct
	// from ErrTransactionFailed so operators can tell failed deletes from
	// failed updates.
	ErrDeleteFailed = errors.New("entry delete failed")

	// ErrStoreUnavailable is returned when the table is missing or the
	// store cannot be reached.
	ErrStoreUnavailable = errors.New("entry store unavailable")
)
