package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Single-table layout: partition key = collection path, sort key = document
// id. Every logical collection shares the one table.
const (
	partitionKeyAttr = "collectionPath"
	sortKeyAttr      = "docId"
)

// DynamoStore is the production DocumentStore backed by a DynamoDB table.
type DynamoStore struct {
	Client *dynamodb.Client
	Table  string
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// NewDynamoStore creates a DynamoStore on the given table. The table name
// comes from DOCUMENTS_TABLE (default "Documents").
func NewDynamoStore(client *dynamodb.Client) *DynamoStore {
	table := os.Getenv("DOCUMENTS_TABLE")
	if table == "" {
		table = "Documents"
	}
	return &DynamoStore{Client: client, Table: table}
}

func (ds *DynamoStore) key(collection, docID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		partitionKeyAttr: &types.AttributeValueMemberS{Value: collection},
		sortKeyAttr:      &types.AttributeValueMemberS{Value: docID},
	}
}

// stripKeys removes the table key attributes so callers see only the
// document fields they wrote.
func stripKeys(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	fields := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		if k == partitionKeyAttr || k == sortKeyAttr {
			continue
		}
		fields[k] = v
	}
	return fields
}

// Get retrieves a document. Returns ErrDocumentNotFound when absent.
func (ds *DynamoStore) Get(ctx context.Context, collection, docID string) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &ds.Table,
		Key:       ds.key(collection, docID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document '%s/%s': %w", collection, docID, err)
	}
	if output.Item == nil {
		return nil, ErrDocumentNotFound
	}
	return stripKeys(output.Item), nil
}

// Put upserts a document.
func (ds *DynamoStore) Put(ctx context.Context, collection, docID string, fields map[string]types.AttributeValue) error {
	item := ds.key(collection, docID)
	for k, v := range fields {
		item[k] = v
	}
	_, err := ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &ds.Table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put document '%s/%s': %w", collection, docID, err)
	}
	return nil
}

// PutIfAbsent creates the document only if it does not exist yet, using a
// conditional PutItem. Returns created=false when another writer got there
// first; the existing document is left untouched.
func (ds *DynamoStore) PutIfAbsent(ctx context.Context, collection, docID string, fields map[string]types.AttributeValue) (bool, error) {
	item := ds.key(collection, docID)
	for k, v := range fields {
		item[k] = v
	}
	_, err := ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &ds.Table,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + partitionKeyAttr + ")"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to conditionally put document '%s/%s': %w", collection, docID, err)
	}
	return true, nil
}

// Scan returns every document of a collection. With collection as partition
// key this is a Query, not a full table scan; pages are followed until the
// collection is exhausted.
func (ds *DynamoStore) Scan(ctx context.Context, collection string) ([]Document, error) {
	var docs []Document
	var startKey map[string]types.AttributeValue

	for {
		output, err := ds.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &ds.Table,
			KeyConditionExpression: aws.String(partitionKeyAttr + " = :collection"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":collection": &types.AttributeValueMemberS{Value: collection},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection '%s': %w", collection, err)
		}

		for _, item := range output.Items {
			id := ""
			if attr, ok := item[sortKeyAttr].(*types.AttributeValueMemberS); ok {
				id = attr.Value
			}
			docs = append(docs, Document{ID: id, Fields: stripKeys(item)})
		}

		if output.LastEvaluatedKey == nil {
			break
		}
		startKey = output.LastEvaluatedKey
	}

	return docs, nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (ds *DynamoStore) Delete(ctx context.Context, collection, docID string) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &ds.Table,
		Key:       ds.key(collection, docID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete document '%s/%s': %w", collection, docID, err)
	}
	return nil
}

// ServerTimestamp returns the timestamp assigned to writes. DynamoDB has no
// store-assigned timestamps, so this is the service clock at write time,
// formatted RFC3339 UTC like every other timestamp in the data model.
func (ds *DynamoStore) ServerTimestamp() string {
	return serverTimestampNow()
}
