package entry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient defines the interface for DynamoDB operations.
type DynamoDBClient interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	TransactWriteItems(ctx context.Context, input *dynamodb.TransactWriteItemsInput, opts ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// DynamoDBRepository implements Repository against a single DynamoDB table.
type DynamoDBRepository struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBRepository creates a new DynamoDBRepository.
func NewDynamoDBRepository(client DynamoDBClient, tableName string) *DynamoDBRepository {
	return &DynamoDBRepository{
		client:    client,
		tableName: tableName,
	}
}

// Create writes the live row for a new entity at version 0.
func (r *DynamoDBRepository) Create(ctx context.Context, entityType, entryID string, data map[string]any, actor string) (*Entry, error) {
	now := time.Now().UTC()
	e := &Entry{
		EntityType:    entityType,
		EntryID:       entryID,
		LatestVersion: LiveVersion,
		Status:        StatusActive,
		CreateDate:    now,
		UpdateDate:    now,
		CreatedBy:     actor,
		UpdatedBy:     actor,
		Data:          data,
	}

	item, err := marshalEntry(e, LiveVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return e, nil
}

// Get retrieves the live, active row for one entity.
func (r *DynamoDBRepository) Get(ctx context.Context, entityType, entryID string) (*Entry, error) {
	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			AttrHashKey:  &types.AttributeValueMemberS{Value: entityType},
			AttrRangeKey: &types.AttributeValueMemberS{Value: RangeKey(LiveVersion, entryID)},
		},
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	if output.Item == nil {
		return nil, ErrNotFound
	}

	e, err := unmarshalEntry(output.Item)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if e.Status != StatusActive {
		return nil, ErrNotFound
	}
	return e, nil
}

// List retrieves every live, active row of one entity type.
func (r *DynamoDBRepository) List(ctx context.Context, entityType string) ([]*Entry, error) {
	output, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("hashKey = :hk AND begins_with(rangeKey, :prefix)"),
		FilterExpression:       aws.String("entryStatus = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hk":     &types.AttributeValueMemberS{Value: entityType},
			":prefix": &types.AttributeValueMemberS{Value: LiveKeyPrefix()},
			":active": &types.AttributeValueMemberS{Value: string(StatusActive)},
		},
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("list entries: %w", err)
	}

	if len(output.Items) == 0 {
		return nil, ErrNotFound
	}

	entries := make([]*Entry, len(output.Items))
	for i, item := range output.Items {
		e, err := unmarshalEntry(item)
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		entries[i] = e
	}
	return entries, nil
}

// Update merges patch over the live row's business data and, when anything
// changed, applies the merge and snapshots the prior state in a single
// transaction conditioned on the version the caller last saw.
func (r *DynamoDBRepository) Update(ctx context.Context, existing *Entry, patch map[string]any, actor string) (*Entry, bool, error) {
	merged, changed := Merge(existing.Data, patch)
	if !changed {
		return existing, false, nil
	}

	current := existing.LatestVersion
	next := current + 1
	now := time.Now().UTC()

	snapItem, err := marshalSnapshot(existing, next, actor)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}

	sets, err := attributevalue.MarshalMap(merged)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
	sets[AttrUpdateDate] = &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)}
	sets[AttrLatestVersion] = &types.AttributeValueMemberN{Value: strconv.Itoa(next)}

	update := r.buildLiveUpdate(existing, sets, current)

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: snapItem}},
		},
	})
	if err != nil {
		if isConditionalCancel(err) {
			return nil, false, ErrConflict
		}
		return nil, false, fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}

	refreshed, err := r.Get(ctx, existing.EntityType, existing.EntryID)
	if err != nil {
		return nil, false, err
	}
	return refreshed, true, nil
}

// Delete snapshots the live row and flips it to DELETED in one transaction,
// conditioned on the version the caller last saw.
func (r *DynamoDBRepository) Delete(ctx context.Context, existing *Entry, actor string) error {
	current := existing.LatestVersion
	next := current + 1
	now := time.Now().UTC()

	snapItem, err := marshalSnapshot(existing, next, actor)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	sets := map[string]types.AttributeValue{
		AttrEntryStatus:   &types.AttributeValueMemberS{Value: string(StatusDeleted)},
		AttrUpdateDate:    &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		AttrUpdatedBy:     &types.AttributeValueMemberS{Value: actor},
		AttrLatestVersion: &types.AttributeValueMemberN{Value: strconv.Itoa(next)},
	}

	update := r.buildLiveUpdate(existing, sets, current)

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
			{Put: &types.Put{TableName: aws.String(r.tableName), Item: snapItem}},
		},
	})
	if err != nil {
		if isConditionalCancel(err) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	return nil
}

// buildLiveUpdate builds the in-place mutation of the live row. The
// condition on latestVersion rejects the transaction when another writer
// moved the version since the caller's read.
func (r *DynamoDBRepository) buildLiveUpdate(existing *Entry, sets map[string]types.AttributeValue, expectedVersion int) *types.Update {
	keys := make([]string, 0, len(sets))
	for key := range sets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	values := map[string]types.AttributeValue{
		":expectedVersion": &types.AttributeValueMemberN{Value: strconv.Itoa(expectedVersion)},
	}
	clauses := make([]string, 0, len(keys))
	for i, key := range keys {
		name := fmt.Sprintf("#f%d", i)
		value := fmt.Sprintf(":f%d", i)
		names[name] = key
		values[value] = sets[key]
		clauses = append(clauses, name+" = "+value)
	}

	return &types.Update{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			AttrHashKey:  &types.AttributeValueMemberS{Value: existing.EntityType},
			AttrRangeKey: &types.AttributeValueMemberS{Value: RangeKey(LiveVersion, existing.EntryID)},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(clauses, ", ")),
		ConditionExpression:       aws.String("latestVersion = :expectedVersion"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
}

// marshalSnapshot copies the entry as it was before the mutation into a
// historical row at the new version. The snapshot keeps the old version in
// its latestVersion attribute and backfills updatedBy with the actor when
// it was never set.
func marshalSnapshot(existing *Entry, newVersion int, actor string) (map[string]types.AttributeValue, error) {
	snapshot := *existing
	if snapshot.UpdatedBy == "" {
		snapshot.UpdatedBy = actor
	}
	return marshalEntry(&snapshot, newVersion)
}

// isConditionalCancel reports whether a transaction was cancelled by the
// expected-version condition check.
func isConditionalCancel(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

// marshalEntry converts an Entry to DynamoDB attribute values. Business
// data attributes are stored flat alongside the bookkeeping attributes;
// bookkeeping attributes win on collision.
func marshalEntry(e *Entry, rangeVersion int) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(e.Data)
	if err != nil {
		return nil, err
	}

	item[AttrHashKey] = &types.AttributeValueMemberS{Value: e.EntityType}
	item[AttrRangeKey] = &types.AttributeValueMemberS{Value: RangeKey(rangeVersion, e.EntryID)}
	item[AttrLatestVersion] = &types.AttributeValueMemberN{Value: strconv.Itoa(e.LatestVersion)}
	item[AttrEntryStatus] = &types.AttributeValueMemberS{Value: string(e.Status)}
	item[AttrEntryID] = &types.AttributeValueMemberS{Value: e.EntryID}
	item[AttrCreateDate] = &types.AttributeValueMemberS{Value: e.CreateDate.UTC().Format(time.RFC3339)}
	item[AttrUpdateDate] = &types.AttributeValueMemberS{Value: e.UpdateDate.UTC().Format(time.RFC3339)}
	if e.CreatedBy != "" {
		item[AttrCreatedBy] = &types.AttributeValueMemberS{Value: e.CreatedBy}
	}
	if e.UpdatedBy != "" {
		item[AttrUpdatedBy] = &types.AttributeValueMemberS{Value: e.UpdatedBy}
	}

	return item, nil
}

// unmarshalEntry converts DynamoDB attribute values to an Entry. Attributes
// not managed by the repository land in Data.
func unmarshalEntry(item map[string]types.AttributeValue) (*Entry, error) {
	e := &Entry{}

	if v, ok := item[AttrHashKey].(*types.AttributeValueMemberS); ok {
		e.EntityType = v.Value
	}
	if v, ok := item[AttrEntryID].(*types.AttributeValueMemberS); ok {
		e.EntryID = v.Value
	}
	if v, ok := item[AttrLatestVersion].(*types.AttributeValueMemberN); ok {
		n, err := strconv.Atoi(v.Value)
		if err != nil {
			return nil, fmt.Errorf("bad latestVersion %q: %w", v.Value, err)
		}
		e.LatestVersion = n
	}
	if v, ok := item[AttrEntryStatus].(*types.AttributeValueMemberS); ok {
		e.Status = Status(v.Value)
	}
	if v, ok := item[AttrCreateDate].(*types.AttributeValueMemberS); ok {
		if t, err := time.Parse(time.RFC3339, v.Value); err == nil {
			e.CreateDate = t
		}
	}
	if v, ok := item[AttrUpdateDate].(*types.AttributeValueMemberS); ok {
		if t, err := time.Parse(time.RFC3339, v.Value); err == nil {
			e.UpdateDate = t
		}
	}
	if v, ok := item[AttrCreatedBy].(*types.AttributeValueMemberS); ok {
		e.CreatedBy = v.Value
	}
	if v, ok := item[AttrUpdatedBy].(*types.AttributeValueMemberS); ok {
		e.UpdatedBy = v.Value
	}

	business := make(map[string]types.AttributeValue, len(item))
	for key, val := range item {
		if !bookkeepingAttrs[key] {
			business[key] = val
		}
	}
	data := map[string]any{}
	if err := attributevalue.UnmarshalMap(business, &data); err != nil {
		return nil, err
	}
	e.Data = data

	return e, nil
}
