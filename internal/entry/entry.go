// Package entry implements versioned, audit-preserving storage of entities
// in a single DynamoDB table. Every entity type shares one table: the
// partition key is the entity-type tag and the sort key encodes a version
// number plus the entity id. Version 0 is the live row, mutated in place;
// every mutation first snapshots the prior state into an immutable
// historical row at the next version number.
package entry

import (
	"time"
)

// Status is the lifecycle flag on the live row.
type Status string

const (
	// StatusActive marks a live entity visible to queries.
	StatusActive Status = "ACTIVE"
	// StatusDeleted marks a soft-deleted entity. The live row is retained
	// for audit but excluded from default reads.
	StatusDeleted Status = "DELETED"
)

// Entry is one versioned record. Bookkeeping attributes live on the struct;
// entity-specific business data lives in Data and is stored flat alongside
// the bookkeeping attributes. The owning service validates the shape of
// Data for its entity type.
type Entry struct {
	EntityType    string
	EntryID       string
	LatestVersion int
	Status        Status
	CreateDate    time.Time
	UpdateDate    time.Time
	CreatedBy     string
	UpdatedBy     string
	Data          map[string]any
}
