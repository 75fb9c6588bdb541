package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchKey builds the deterministic id of the match between two users: the
// ids sorted lexicographically and joined with "_". Both sides of a mutual
// like compute the same key regardless of who swipes last.
func MatchKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// ExtractString safely extracts a string from a document attribute map
func ExtractString(fields map[string]types.AttributeValue, field string) string {
	if attr, ok := fields[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ExtractStringList safely extracts a list of strings from a document
// attribute map
func ExtractStringList(fields map[string]types.AttributeValue, field string) []string {
	attr, ok := fields[field]
	if !ok {
		return nil
	}
	list, ok := attr.(*types.AttributeValueMemberL)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(list.Value))
	for _, item := range list.Value {
		if v, ok := item.(*types.AttributeValueMemberS); ok {
			values = append(values, v.Value)
		}
	}
	return values
}
