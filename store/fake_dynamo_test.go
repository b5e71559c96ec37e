package store_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory stand-in for the DynamoDB operations used by
// DynamoStore. Query honours the key condition and paginates by pageSize.
type fakeDynamo struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]types.AttributeValue
	pageSize int
	fail     error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

func fakeItemID(key map[string]types.AttributeValue) (string, string) {
	id := key["object_id"].(*types.AttributeValueMemberS).Value
	k := key["attr_key"].(*types.AttributeValueMemberS).Value
	return id, k
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[name]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		f.tables[name] = t
	}
	return t
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	id, k := fakeItemID(in.Key)
	return &dynamodb.GetItemOutput{Item: f.table(*in.TableName)[id+"\x00"+k]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	id, k := fakeItemID(in.Item)
	f.table(*in.TableName)[id+"\x00"+k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	id, k := fakeItemID(in.Key)
	delete(f.table(*in.TableName), id+"\x00"+k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	idAttr, ok := in.ExpressionAttributeValues[":id"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("fake: missing :id")
	}
	prefix := ""
	if p, ok := in.ExpressionAttributeValues[":prefix"].(*types.AttributeValueMemberS); ok {
		prefix = p.Value
	}

	var keys []string
	for composite := range f.table(*in.TableName) {
		id, k, _ := strings.Cut(composite, "\x00")
		if id == idAttr.Value && strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		_, last := fakeItemID(in.ExclusiveStartKey)
		start = sort.SearchStrings(keys, last) + 1
	}
	end := len(keys)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &dynamodb.QueryOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, map[string]types.AttributeValue{
			"attr_key": &types.AttributeValueMemberS{Value: k},
		})
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"object_id": idAttr,
			"attr_key":  &types.AttributeValueMemberS{Value: keys[end-1]},
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}
