package repository

import (
	"context"

	"agency_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultIdentifiersTableName = "identifiers"

type identifierItem struct {
	Scope     string `dynamodbav:"scope"`
	Number    string `dynamodbav:"number"`
	Kind      string `dynamodbav:"kind"`
	RecordID  string `dynamodbav:"record_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// IdentifierDynamoRepository reads the reservation rows written by every numbered Create.
//
// Table requirements:
//   - PK: scope (string), e.g. "FACT-2026"
//   - SK: number (string), e.g. "FACT-2026-00042"
type IdentifierDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IIdentifierRepository = (*IdentifierDynamoRepository)(nil)

func NewIdentifierDynamoRepository(ddb DynamoAPI, tableName string) *IdentifierDynamoRepository {
	return &IdentifierDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultIdentifiersTableName),
	}
}

func (r *IdentifierDynamoRepository) CountIssued(ctx context.Context, scope string) (int, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#scope = :scope"),
		ExpressionAttributeNames: map[string]string{
			"#scope": "scope",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":scope": &types.AttributeValueMemberS{Value: scope},
		},
		Select:         types.SelectCount,
		ConsistentRead: aws.Bool(true),
	}
	total := 0
	for {
		out, err := r.ddb.Query(ctx, in)
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (r *IdentifierDynamoRepository) Exists(ctx context.Context, scope, number string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"scope":  &types.AttributeValueMemberS{Value: scope},
			"number": &types.AttributeValueMemberS{Value: number},
		},
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String("#number"),
		ExpressionAttributeNames: map[string]string{
			"#number": "number",
		},
	})
	if err != nil {
		return false, err
	}
	return len(out.Item) > 0, nil
}
