package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"agency_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEffectsTableName = "effects"

type effectItem struct {
	Key         string `dynamodbav:"key"`
	ClaimedAt   string `dynamodbav:"claimed_at"`
	ClaimedUnix int64  `dynamodbav:"claimed_unix"`
}

// EffectDynamoRepository stores one row per applied side effect.
//
// Table requirements:
//   - PK: key (string), "<orderId>:<effect>"
//   - claimed_unix (number) is compared by Reclaim; rows without it count as stale
type EffectDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IEffectRepository = (*EffectDynamoRepository)(nil)

func NewEffectDynamoRepository(ddb DynamoAPI, tableName string) *EffectDynamoRepository {
	return &EffectDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultEffectsTableName)}
}

func (r *EffectDynamoRepository) Claim(ctx context.Context, key string) (bool, error) {
	return r.put(ctx, key, "attribute_not_exists(#key)", nil)
}

func (r *EffectDynamoRepository) Reclaim(ctx context.Context, key string, staleBefore time.Time) (bool, error) {
	return r.put(ctx, key, "attribute_not_exists(#key) OR attribute_not_exists(#claimed_unix) OR #claimed_unix < :cutoff",
		map[string]types.AttributeValue{
			":cutoff": &types.AttributeValueMemberN{Value: strconv.FormatInt(staleBefore.UnixNano(), 10)},
		})
}

func (r *EffectDynamoRepository) put(ctx context.Context, key, condition string, values map[string]types.AttributeValue) (bool, error) {
	now := time.Now()
	av, err := attributevalue.MarshalMap(effectItem{Key: key, ClaimedAt: formatTime(now), ClaimedUnix: now.UnixNano()})
	if err != nil {
		return false, err
	}
	names := map[string]string{"#key": "key"}
	if values != nil {
		names["#claimed_unix"] = "claimed_unix"
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *EffectDynamoRepository) Release(ctx context.Context, key string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
	})
	return err
}
