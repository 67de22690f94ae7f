package entry

import (
	"context"
)

// Repository defines the versioned-entry storage operations.
type Repository interface {
	// Create writes the live row for a new entity at version 0. Idempotency
	// is the caller's concern; no existence check is made.
	Create(ctx context.Context, entityType, entryID string, data map[string]any, actor string) (*Entry, error)

	// Get returns the live, active row for one entity.
	Get(ctx context.Context, entityType, entryID string) (*Entry, error)

	// List returns every live, active row of one entity type, in
	// store-native sort-key order.
	List(ctx context.Context, entityType string) ([]*Entry, error)

	// Update merges patch over the entry's business data and, when anything
	// changed, atomically snapshots the prior state and mutates the live
	// row. The returned bool is false when the patch was a no-op and no
	// write occurred. On success the returned entry is re-read from the
	// store so callers observe server-assigned fields.
	Update(ctx context.Context, existing *Entry, patch map[string]any, actor string) (*Entry, bool, error)

	// Delete snapshots the entry's state and flips the live row to DELETED
	// in one transaction. The live row is retained for audit.
	Delete(ctx context.Context, existing *Entry, actor string) error
}
