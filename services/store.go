package services

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// timestampLayout is RFC3339 UTC with a fixed-width fraction so that
// timestamp strings sort chronologically as plain strings.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func serverTimestampNow() string {
	return time.Now().UTC().Format(timestampLayout)
}

// ErrDocumentNotFound is returned by Get when the document does not exist.
// Callers must not confuse it with a store outage: any other error means the
// read failed and the document may or may not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Document is one entry of a collection scan.
type Document struct {
	ID     string
	Fields map[string]types.AttributeValue
}

// DocumentStore is the keyed-document storage surface the services run on.
// Collections are logical paths (e.g. "users", "users/{id}/likes",
// "matches/{id}/messages"); documents are attribute maps marshalled with
// the DynamoDB attributevalue package.
//
// PutIfAbsent is the single coordination primitive: the store serializes it
// per (collection, docID), so exactly one of two concurrent creators wins.
// The match engine relies on this contract.
type DocumentStore interface {
	Get(ctx context.Context, collection, docID string) (map[string]types.AttributeValue, error)
	Put(ctx context.Context, collection, docID string, fields map[string]types.AttributeValue) error
	PutIfAbsent(ctx context.Context, collection, docID string, fields map[string]types.AttributeValue) (bool, error)
	Scan(ctx context.Context, collection string) ([]Document, error)
	Delete(ctx context.Context, collection, docID string) error
	ServerTimestamp() string
}

// MarshalDocument converts a model struct into a document attribute map.
func MarshalDocument(v interface{}) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(v)
}

// UnmarshalDocument converts a document attribute map back into a model struct.
func UnmarshalDocument(fields map[string]types.AttributeValue, out interface{}) error {
	return attributevalue.UnmarshalMap(fields, out)
}
