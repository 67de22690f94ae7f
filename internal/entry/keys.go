package entry

import "fmt"

// Attribute names for DynamoDB items.
const (
	AttrHashKey       = "hashKey"
	AttrRangeKey      = "rangeKey"
	AttrLatestVersion = "latestVersion"
	AttrEntryStatus   = "entryStatus"
	AttrEntryID       = "entryId"
	AttrCreateDate    = "createDate"
	AttrUpdateDate    = "updateDate"
	AttrCreatedBy     = "createdBy"
	AttrUpdatedBy     = "updatedBy"
)

// LiveVersion is the version number of the single mutable row per entity.
const LiveVersion = 0

// bookkeepingAttrs are managed by the repository and excluded both from
// Entry.Data and from the has-update comparison.
var bookkeepingAttrs = map[string]bool{
	AttrHashKey:       true,
	AttrRangeKey:      true,
	AttrLatestVersion: true,
	AttrEntryStatus:   true,
	AttrEntryID:       true,
	AttrCreateDate:    true,
	AttrUpdateDate:    true,
	AttrCreatedBy:     true,
	AttrUpdatedBy:     true,
}

// RangeKey builds the composite sort key for a given version of an entity.
func RangeKey(version int, entryID string) string {
	return fmt.Sprintf("v%d#%s", version, entryID)
}

// LiveKeyPrefix is the sort-key prefix shared by all live rows.
func LiveKeyPrefix() string {
	return fmt.Sprintf("v%d#", LiveVersion)
}
