package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type avMap = map[string]types.AttributeValue

// fakeDynamo keeps tables in memory and honours the condition expressions the
// repositories rely on.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]avMap
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]avMap{}}
}

func stringAttr(m avMap, name string) string {
	if v, ok := m[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func primaryKey(m avMap) string {
	if id := stringAttr(m, "id"); id != "" {
		return id
	}
	if k := stringAttr(m, "key"); k != "" {
		return k
	}
	return stringAttr(m, "scope") + "|" + stringAttr(m, "number")
}

func (f *fakeDynamo) table(name string) map[string]avMap {
	t, ok := f.tables[name]
	if !ok {
		t = map[string]avMap{}
		f.tables[name] = t
	}
	return t
}

// conditionHolds evaluates OR-joined attribute_exists, attribute_not_exists and
// numeric "<" clauses against the stored item.
func conditionHolds(cond *string, item avMap, names map[string]string, values avMap) bool {
	if cond == nil {
		return true
	}
	for _, clause := range strings.Split(*cond, " OR ") {
		if clauseHolds(strings.TrimSpace(clause), item, names, values) {
			return true
		}
	}
	return false
}

func clauseHolds(clause string, item avMap, names map[string]string, values avMap) bool {
	attr := func(token string) string {
		token = strings.TrimSpace(token)
		if n, ok := names[token]; ok {
			return n
		}
		return token
	}
	switch {
	case strings.HasPrefix(clause, "attribute_not_exists("):
		_, ok := item[attr(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_not_exists("), ")"))]
		return !ok
	case strings.HasPrefix(clause, "attribute_exists("):
		_, ok := item[attr(strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_exists("), ")"))]
		return ok
	case strings.Contains(clause, " < "):
		parts := strings.SplitN(clause, " < ", 2)
		left, ok := item[attr(parts[0])].(*types.AttributeValueMemberN)
		right, ok2 := values[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberN)
		if !ok || !ok2 {
			return false
		}
		l, _ := strconv.ParseInt(left.Value, 10, 64)
		r, _ := strconv.ParseInt(right.Value, 10, 64)
		return l < r
	}
	return true
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.table(aws.ToString(in.TableName))[primaryKey(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	k := primaryKey(in.Item)
	if !conditionHolds(in.ConditionExpression, t[k], in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")}
	}
	t[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.table(aws.ToString(in.TableName)), primaryKey(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var attr, value string
	for _, a := range in.ExpressionAttributeNames {
		attr = a
	}
	for _, v := range in.ExpressionAttributeValues {
		value = v.(*types.AttributeValueMemberS).Value
	}
	out := &dynamodb.QueryOutput{}
	for _, item := range f.table(aws.ToString(in.TableName)) {
		if stringAttr(item, attr) != value {
			continue
		}
		out.Count++
		if in.Select != types.SelectCount {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &dynamodb.ScanOutput{}
	for _, item := range f.table(aws.ToString(in.TableName)) {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, ti := range in.TransactItems {
		reasons[i].Code = aws.String("None")
		existing := f.table(aws.ToString(ti.Put.TableName))[primaryKey(ti.Put.Item)]
		if !conditionHolds(ti.Put.ConditionExpression, existing, ti.Put.ExpressionAttributeNames, ti.Put.ExpressionAttributeValues) {
			reasons[i].Code = aws.String("ConditionalCheckFailed")
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("transaction cancelled"),
			CancellationReasons: reasons,
		}
	}
	for _, ti := range in.TransactItems {
		f.table(aws.ToString(ti.Put.TableName))[primaryKey(ti.Put.Item)] = ti.Put.Item
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

var _ DynamoAPI = (*fakeDynamo)(nil)
