package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.QueryAPIClient
}

// DynamoStore provides attribute storage for one object kind in a DynamoDB
// table keyed by object_id (partition) and attr_key (sort).
type DynamoStore struct {
	client   DynamoAPI
	table    string
	pageSize int32
}

// NewDynamoStore creates a store over table.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{
		client: client,
		table:  table,
	}
}

// NewDynamoStores creates a router with one DynamoStore per kind, using the
// tables named in config.
func NewDynamoStores(client DynamoAPI, config Config) *Stores {
	config.validate()
	s := NewStores()
	for _, kind := range Kinds() {
		ds := NewDynamoStore(client, config.Table(kind))
		ds.pageSize = config.PageSize
		s.Register(kind, ds)
	}
	return s
}

// Table returns the table name.
func (s *DynamoStore) Table() string {
	return s.table
}

// Get retrieves an attribute value. Reads are strongly consistent so a
// request observes its own writes.
func (s *DynamoStore) Get(ctx context.Context, objectID, key string) (any, bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            itemKey(objectID, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, unavailable("get "+key, err)
	}
	if result.Item == nil {
		return nil, false, nil
	}

	v, err := decodeValue(result.Item[attrValue])
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

// Set writes an attribute value, replacing the previous item.
func (s *DynamoStore) Set(ctx context.Context, objectID, key string, value any) error {
	av, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	item := itemKey(objectID, key)
	item[attrValue] = av
	item[attrUpdatedAt] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return unavailable("set "+key, err)
}

// Delete removes an attribute.
func (s *DynamoStore) Delete(ctx context.Context, objectID, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(objectID, key),
	})
	return unavailable("delete "+key, err)
}

// KeysMatching queries the object's partition, narrowed by the pattern
// prefix, and filters keys by the full pattern.
func (s *DynamoStore) KeysMatching(ctx context.Context, objectID string, p Pattern) ([]string, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    aws.String(keyConditionExpr(p.Prefix)),
		ExpressionAttributeNames:  keyExprNames(),
		ExpressionAttributeValues: keyExprValues(objectID, p.Prefix),
		ProjectionExpression:      aws.String("#key"),
		ConsistentRead:            aws.Bool(true),
	}
	if s.pageSize > 0 {
		input.Limit = aws.Int32(s.pageSize)
	}

	// Paginate through all results
	var keys []string
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, unavailable("query "+p.String(), err)
		}
		for _, item := range page.Items {
			if key := stringAttr(item, attrKey); p.Match(key) {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// encodeValue converts a value to a DynamoDB attribute. Strings are written
// directly so empty strings stay empty strings.
func encodeValue(v any) (types.AttributeValue, error) {
	switch t := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: t}, nil
	default:
		return attributevalue.Marshal(v)
	}
}

// decodeValue converts a DynamoDB attribute to plain Go values
// (string, float64, bool, []any, map[string]any or nil).
func decodeValue(av types.AttributeValue) (any, error) {
	if av == nil {
		return nil, nil
	}
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value, nil
	}
	var v any
	if err := attributevalue.Unmarshal(av, &v); err != nil {
		return nil, err
	}
	return v, nil
}
