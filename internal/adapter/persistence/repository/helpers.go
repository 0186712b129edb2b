package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// ErrRecordMissing is returned by Update when the record was deleted underneath us.
var ErrRecordMissing = errors.New("record does not exist")

func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func getByID[T any](ctx context.Context, ddb DynamoAPI, table, id string) (T, bool, error) {
	var it T
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return it, false, err
	}
	if len(out.Item) == 0 {
		return it, false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return it, false, err
	}
	return it, true, nil
}

// queryIndex reads every item of a GSI partition.
func queryIndex[T any](ctx context.Context, ddb DynamoAPI, table, index, attr, value string) ([]T, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	}
	var items []T
	for {
		out, err := ddb.Query(ctx, in)
		if err != nil {
			return nil, err
		}
		page := make([]T, 0, len(out.Items))
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func scanAll[T any](ctx context.Context, ddb DynamoAPI, table string) ([]T, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(table)}
	var items []T
	for {
		out, err := ddb.Scan(ctx, in)
		if err != nil {
			return nil, err
		}
		page := make([]T, 0, len(out.Items))
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// replaceExisting overwrites a whole record, refusing to resurrect a deleted one.
func replaceExisting(ctx context.Context, ddb DynamoAPI, table, id string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("%s %s: %w", table, id, ErrRecordMissing)
		}
		return err
	}
	return nil
}

// numberedRecord is a new entity whose human-readable number must be unique.
type numberedRecord struct {
	table  string
	id     string
	number string
	kind   string
	item   any
}

// createNumbered writes the record and its identifier reservation in one transaction.
// A taken number surfaces as interfaces.ErrDuplicateIdentifier.
func createNumbered(ctx context.Context, ddb DynamoAPI, identifiersTable string, rec numberedRecord, now time.Time) error {
	av, err := attributevalue.MarshalMap(rec.item)
	if err != nil {
		return err
	}
	guard, err := attributevalue.MarshalMap(identifierItem{
		Scope:     entities.ScopeOfIdentifier(rec.number),
		Number:    rec.number,
		Kind:      rec.kind,
		RecordID:  rec.id,
		CreatedAt: formatTime(now),
	})
	if err != nil {
		return err
	}

	_, err = ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(rec.table),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(identifiersTable),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#number)"),
				ExpressionAttributeNames: map[string]string{"#number": "number"},
			}},
		},
	})
	if err == nil {
		return nil
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) && guardConflict(tce) {
		return fmt.Errorf("%s %s: %w", rec.kind, rec.number, interfaces.ErrDuplicateIdentifier)
	}
	return err
}

// guardConflict reports whether the reservation put (second item) failed its condition.
func guardConflict(tce *types.TransactionCanceledException) bool {
	if len(tce.CancellationReasons) < 2 {
		return false
	}
	code := tce.CancellationReasons[1].Code
	return code != nil && *code == "ConditionalCheckFailed"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatDecimalPtr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return formatDecimal(*d)
}

func parseDecimalPtr(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
