package store_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/todolist/store"
	"github.com/jacentio/todolist/todo"
)

// --- Fake DynamoDB Client ---

// fakeClient keeps items in memory, keyed by description and id.
// Scan returns at most pageSize items per call to exercise pagination.
type fakeClient struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	pageSize int

	putErr    error
	deleteErr error
	queryErr  error
	scanErr   error

	scanCalls  int
	lastQuery  *dynamodb.QueryInput
	lastDelete *dynamodb.DeleteItemInput
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		items:    make(map[string]map[string]types.AttributeValue),
		pageSize: 2,
	}
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func fakeKey(description, id string) string {
	return description + "\x00" + id
}

func (f *fakeClient) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items[fakeKey(stringAttr(in.Item, "description"), stringAttr(in.Item, "id"))] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastDelete = in
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	key := fakeKey(stringAttr(in.Key, "description"), stringAttr(in.Key, "id"))
	if _, ok := f.items[key]; !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	delete(f.items, key)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = in
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	id := stringAttr(in.ExpressionAttributeValues, ":id")
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items {
		if stringAttr(item, "id") == id {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (f *fakeClient) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scanCalls++
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		last := fakeKey(stringAttr(in.ExclusiveStartKey, "description"), stringAttr(in.ExclusiveStartKey, "id"))
		start = sort.SearchStrings(keys, last) + 1
	}

	end := min(start+f.pageSize, len(keys))
	out := &dynamodb.ScanOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, f.items[k])
	}
	if end < len(keys) {
		last := f.items[keys[end-1]]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"description": last["description"],
			"id":          last["id"],
		}
	}
	return out, nil
}

func sampleItem(id, description string) todo.Item {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return todo.Item{
		ID:          id,
		Description: description,
		Owner:       "alice",
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// --- Unit Tests ---

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.TableName != "todo_items" {
		t.Errorf("expected TableName 'todo_items', got %q", cfg.TableName)
	}
	if cfg.IDIndexName != "id-index" {
		t.Errorf("expected IDIndexName 'id-index', got %q", cfg.IDIndexName)
	}
}

func TestNewStore_AppliesDefaults(t *testing.T) {
	s := store.New(nil, store.Config{})
	if s == nil {
		t.Fatal("expected non-nil Store")
	}
	if s.Config() != store.DefaultConfig() {
		t.Errorf("expected default config, got %+v", s.Config())
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ store.ItemStore = (*store.Store)(nil)
	var _ store.Client = (*dynamodb.Client)(nil)
	var _ store.TableClient = (*dynamodb.Client)(nil)
}

// --- Store Tests (fake client) ---

func TestStore_SaveAndFindByID(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := store.New(client, store.DefaultConfig())

	item := sampleItem("abc", "Buy milk")
	saved, err := s.Save(ctx, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.Equal(item) {
		t.Errorf("expected %v, got %v", item, saved)
	}

	got, err := s.FindByID(ctx, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(item) {
		t.Errorf("expected %v, got %v", item, got)
	}

	if aws.ToString(client.lastQuery.IndexName) != "id-index" {
		t.Errorf("expected query on 'id-index', got %q", aws.ToString(client.lastQuery.IndexName))
	}
	if aws.ToString(client.lastQuery.TableName) != "todo_items" {
		t.Errorf("expected query on 'todo_items', got %q", aws.ToString(client.lastQuery.TableName))
	}
}

func TestStore_SaveReplacesSameKey(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := store.New(client, store.DefaultConfig())

	item := sampleItem("abc", "Buy milk")
	if _, err := s.Save(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item.Finished = true
	if _, err := s.Save(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.items) != 1 {
		t.Errorf("expected 1 stored item, got %d", len(client.items))
	}
	got, err := s.FindByID(ctx, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Finished {
		t.Error("expected finished to be true after replace")
	}
}

func TestStore_SaveUnderNewDescriptionKeepsPreviousRecord(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := store.New(client, store.DefaultConfig())

	item := sampleItem("abc", "Buy milk")
	if _, err := s.Save(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item.Description = "Buy oat milk"
	if _, err := s.Save(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.items) != 2 {
		t.Errorf("expected 2 stored items, got %d", len(client.items))
	}

	if err := s.DeleteByID(ctx, "abc", "Buy milk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.items) != 1 {
		t.Errorf("expected 1 stored item after deleting the previous version, got %d", len(client.items))
	}
	got, err := s.FindByID(ctx, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != "Buy oat milk" {
		t.Errorf("expected description %q, got %q", "Buy oat milk", got.Description)
	}
}

func TestStore_SaveValidatesKey(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeClient(), store.DefaultConfig())

	if _, err := s.Save(ctx, sampleItem("", "Buy milk")); !errors.Is(err, store.ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	if _, err := s.Save(ctx, sampleItem("abc", "")); !errors.Is(err, store.ErrMissingPartitionKey) {
		t.Errorf("expected ErrMissingPartitionKey, got %v", err)
	}
}

func TestStore_SaveClientError(t *testing.T) {
	client := newFakeClient()
	client.putErr = errors.New("service unavailable")
	s := store.New(client, store.DefaultConfig())

	_, err := s.Save(context.Background(), sampleItem("abc", "Buy milk"))
	if !errors.Is(err, client.putErr) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

func TestStore_FindByIDNotFound(t *testing.T) {
	s := store.New(newFakeClient(), store.DefaultConfig())

	tests := []struct {
		name string
		id   string
	}{
		{"unknown id", "missing"},
		{"empty id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.FindByID(context.Background(), tt.id)
			if !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_FindByIDClientError(t *testing.T) {
	client := newFakeClient()
	client.queryErr = errors.New("throttled")
	s := store.New(client, store.DefaultConfig())

	_, err := s.FindByID(context.Background(), "abc")
	if !errors.Is(err, client.queryErr) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Error("did not expect ErrNotFound")
	}
}

func TestStore_FindAllFollowsPagination(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := store.New(client, store.DefaultConfig())

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		if _, err := s.Save(ctx, sampleItem(id, "task "+id)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != len(ids) {
		t.Errorf("expected %d items, got %d", len(ids), len(items))
	}
	if client.scanCalls != 3 {
		t.Errorf("expected 3 scan pages, got %d", client.scanCalls)
	}
}

func TestStore_FindAllEmpty(t *testing.T) {
	s := store.New(newFakeClient(), store.DefaultConfig())

	items, err := s.FindAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestStore_FindAllClientError(t *testing.T) {
	client := newFakeClient()
	client.scanErr = errors.New("access denied")
	s := store.New(client, store.DefaultConfig())

	if _, err := s.FindAll(context.Background()); !errors.Is(err, client.scanErr) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

func TestStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := store.New(client, store.DefaultConfig())

	if _, err := s.Save(ctx, sampleItem("abc", "Buy milk")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteByID(ctx, "abc", "Buy milk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(client.lastDelete.ConditionExpression) != "attribute_exists(#id)" {
		t.Errorf("expected conditional delete, got %q", aws.ToString(client.lastDelete.ConditionExpression))
	}

	if _, err := s.FindByID(ctx, "abc"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_DeleteByIDNotFound(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := store.New(client, store.DefaultConfig())

	if _, err := s.Save(ctx, sampleItem("abc", "Buy milk")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name         string
		id           string
		partitionKey string
	}{
		{"unknown id", "missing", "Buy milk"},
		{"wrong partition key", "abc", "Buy bread"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.DeleteByID(ctx, tt.id, tt.partitionKey)
			if !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}

	if len(client.items) != 1 {
		t.Errorf("expected item to survive, got %d items", len(client.items))
	}
}

func TestStore_DeleteByIDValidatesKey(t *testing.T) {
	s := store.New(newFakeClient(), store.DefaultConfig())

	if err := s.DeleteByID(context.Background(), "abc", ""); !errors.Is(err, store.ErrMissingPartitionKey) {
		t.Errorf("expected ErrMissingPartitionKey, got %v", err)
	}
}

// --- Table Tests ---

func TestCreateTableInput(t *testing.T) {
	in := store.CreateTableInput(store.Config{TableName: "items"})

	if aws.ToString(in.TableName) != "items" {
		t.Errorf("expected table 'items', got %q", aws.ToString(in.TableName))
	}
	if in.BillingMode != types.BillingModePayPerRequest {
		t.Errorf("expected pay per request billing, got %v", in.BillingMode)
	}
	if len(in.KeySchema) != 2 {
		t.Fatalf("expected 2 key schema elements, got %d", len(in.KeySchema))
	}
	if aws.ToString(in.KeySchema[0].AttributeName) != "description" || in.KeySchema[0].KeyType != types.KeyTypeHash {
		t.Errorf("expected hash key 'description', got %+v", in.KeySchema[0])
	}
	if aws.ToString(in.KeySchema[1].AttributeName) != "id" || in.KeySchema[1].KeyType != types.KeyTypeRange {
		t.Errorf("expected range key 'id', got %+v", in.KeySchema[1])
	}
	if len(in.GlobalSecondaryIndexes) != 1 {
		t.Fatalf("expected 1 GSI, got %d", len(in.GlobalSecondaryIndexes))
	}
	if aws.ToString(in.GlobalSecondaryIndexes[0].IndexName) != "id-index" {
		t.Errorf("expected GSI 'id-index', got %q", aws.ToString(in.GlobalSecondaryIndexes[0].IndexName))
	}
}

// --- Examples ---

// ExampleStore demonstrates wiring the store to a DynamoDB client.
func ExampleStore() {
	ctx := context.Background()
	_ = ctx

	cfg := store.DefaultConfig()
	_ = cfg

	// client := dynamodb.NewFromConfig(awsCfg)
	// if err := store.CreateTable(ctx, client, cfg); err != nil { ... }
	// s := store.New(client, cfg)
	// item, err := s.Save(ctx, todo.Item{ID: uuid.NewString(), Description: "Buy milk"})
}
