package services

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryStore is an in-process DocumentStore used for local development
// (STORE_BACKEND=memory) and as the injected fake in tests. A single mutex
// covers every operation, which makes PutIfAbsent trivially serialized per
// key — the same contract the DynamoDB conditional put provides.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]types.AttributeValue
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]types.AttributeValue),
	}
}

// Get retrieves a document. Returns ErrDocumentNotFound when absent.
func (ms *MemoryStore) Get(ctx context.Context, collection, docID string) (map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	docs, ok := ms.collections[collection]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	fields, ok := docs[docID]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return copyFields(fields), nil
}

// Put upserts a document.
func (ms *MemoryStore) Put(ctx context.Context, collection, docID string, fields map[string]types.AttributeValue) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	docs, ok := ms.collections[collection]
	if !ok {
		docs = make(map[string]map[string]types.AttributeValue)
		ms.collections[collection] = docs
	}
	docs[docID] = copyFields(fields)
	return nil
}

// PutIfAbsent creates the document only if it does not exist yet. The
// existence check and the write happen under one lock, so concurrent
// creators of the same document see exactly one winner.
func (ms *MemoryStore) PutIfAbsent(ctx context.Context, collection, docID string, fields map[string]types.AttributeValue) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	docs, ok := ms.collections[collection]
	if !ok {
		docs = make(map[string]map[string]types.AttributeValue)
		ms.collections[collection] = docs
	}
	if _, exists := docs[docID]; exists {
		return false, nil
	}
	docs[docID] = copyFields(fields)
	return true, nil
}

// Scan returns every document of a collection, ordered by id for
// deterministic iteration.
func (ms *MemoryStore) Scan(ctx context.Context, collection string) ([]Document, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	docs := ms.collections[collection]
	result := make([]Document, 0, len(docs))
	for id, fields := range docs {
		result = append(result, Document{ID: id, Fields: copyFields(fields)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (ms *MemoryStore) Delete(ctx context.Context, collection, docID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if docs, ok := ms.collections[collection]; ok {
		delete(docs, docID)
	}
	return nil
}

// ServerTimestamp returns the write timestamp, RFC3339 UTC.
func (ms *MemoryStore) ServerTimestamp() string {
	return serverTimestampNow()
}

// copyFields deep-copies an attribute map so callers cannot mutate stored
// state through shared nested maps or lists.
func copyFields(fields map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(fields))
	for k, v := range fields {
		out[k] = copyAttribute(v)
	}
	return out
}

func copyAttribute(attr types.AttributeValue) types.AttributeValue {
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		return &types.AttributeValueMemberS{Value: v.Value}
	case *types.AttributeValueMemberN:
		return &types.AttributeValueMemberN{Value: v.Value}
	case *types.AttributeValueMemberBOOL:
		return &types.AttributeValueMemberBOOL{Value: v.Value}
	case *types.AttributeValueMemberNULL:
		return &types.AttributeValueMemberNULL{Value: v.Value}
	case *types.AttributeValueMemberB:
		b := make([]byte, len(v.Value))
		copy(b, v.Value)
		return &types.AttributeValueMemberB{Value: b}
	case *types.AttributeValueMemberSS:
		return &types.AttributeValueMemberSS{Value: append([]string(nil), v.Value...)}
	case *types.AttributeValueMemberNS:
		return &types.AttributeValueMemberNS{Value: append([]string(nil), v.Value...)}
	case *types.AttributeValueMemberL:
		list := make([]types.AttributeValue, len(v.Value))
		for i, item := range v.Value {
			list[i] = copyAttribute(item)
		}
		return &types.AttributeValueMemberL{Value: list}
	case *types.AttributeValueMemberM:
		return &types.AttributeValueMemberM{Value: copyFields(v.Value)}
	default:
		return attr
	}
}
