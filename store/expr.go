package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item attribute names used by DynamoStore.
const (
	attrObjectID  = "object_id"
	attrKey       = "attr_key"
	attrValue     = "value"
	attrUpdatedAt = "updated_at"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// itemKey returns the primary key of one attribute.
func itemKey(objectID, key string) PK {
	return PK{
		attrObjectID: &types.AttributeValueMemberS{Value: objectID},
		attrKey:      &types.AttributeValueMemberS{Value: key},
	}
}

// keyConditionExpr returns the Query key condition selecting an object's
// attributes, narrowed to a key prefix when one is given.
func keyConditionExpr(prefix string) string {
	if prefix == "" {
		return "#id = :id"
	}
	return "#id = :id AND begins_with(#key, :prefix)"
}

// keyExprNames returns expression attribute names for keyConditionExpr.
func keyExprNames() map[string]string {
	return map[string]string{
		"#id":  attrObjectID,
		"#key": attrKey,
	}
}

// keyExprValues returns expression attribute values for keyConditionExpr.
func keyExprValues(objectID, prefix string) map[string]types.AttributeValue {
	values := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: objectID},
	}
	if prefix != "" {
		values[":prefix"] = &types.AttributeValueMemberS{Value: prefix}
	}
	return values
}

// stringAttr extracts a string attribute from an item.
func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
