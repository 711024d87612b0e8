package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"

	"github.com/jacentio/todolist/todo"
)

// Client is the subset of the DynamoDB API used by Store.
// *dynamodb.Client satisfies it.
type Client interface {
	dynamodb.QueryAPIClient
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store provides DynamoDB operations for to-do items.
type Store struct {
	client Client
	config Config
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Config returns the effective configuration.
func (s *Store) Config() Config {
	return s.config
}

// Save puts the item, replacing any item with the same key.
func (s *Store) Save(ctx context.Context, item todo.Item) (todo.Item, error) {
	if err := ValidateKey(item.ID, item.PartitionKey()); err != nil {
		return todo.Item{}, err
	}

	raw, err := marshalItem(item)
	if err != nil {
		return todo.Item{}, err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.TableName),
		Item:      raw,
	})
	if err != nil {
		return todo.Item{}, errors.Wrapf(err, "put item %s", item.ID)
	}

	return item, nil
}

// FindByID looks the item up through the id index.
func (s *Store) FindByID(ctx context.Context, id string) (todo.Item, error) {
	if id == "" {
		return todo.Item{}, ErrNotFound
	}

	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.config.TableName),
		IndexName:              aws.String(s.config.IDIndexName),
		KeyConditionExpression: aws.String("#id = :id"),
		ExpressionAttributeNames: map[string]string{
			"#id": AttrID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return todo.Item{}, errors.Wrapf(err, "query item %s", id)
	}
	if len(result.Items) == 0 {
		return todo.Item{}, ErrNotFound
	}

	return unmarshalItem(result.Items[0])
}

// FindAll scans the whole table, following pagination.
func (s *Store) FindAll(ctx context.Context) ([]todo.Item, error) {
	items := []todo.Item{}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.config.TableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan items")
		}
		for _, raw := range page.Items {
			item, err := unmarshalItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	return items, nil
}

// DeleteByID deletes the item addressed by id and partition key.
// The delete is conditional so that a missing item is reported as ErrNotFound.
func (s *Store) DeleteByID(ctx context.Context, id string, partitionKey string) error {
	if err := ValidateKey(id, partitionKey); err != nil {
		return err
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.config.TableName),
		Key:                 ItemKey(id, partitionKey),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": AttrID,
		},
	})

	return s.mapDeleteError(err)
}

// mapDeleteError maps DynamoDB errors for DeleteByID.
func (s *Store) mapDeleteError(err error) error {
	if err == nil {
		return nil
	}

	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return ErrNotFound
	}

	return errors.Wrap(err, "delete item")
}

// marshalItem converts an item to its DynamoDB representation.
// Timestamps are stored as UTC RFC 3339 strings.
func marshalItem(item todo.Item) (map[string]types.AttributeValue, error) {
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	raw, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal item %s", item.ID)
	}

	return raw, nil
}

// unmarshalItem converts a DynamoDB item to a todo.Item.
func unmarshalItem(raw map[string]types.AttributeValue) (todo.Item, error) {
	var item todo.Item
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return todo.Item{}, errors.Wrap(err, "unmarshal item")
	}

	item.CreatedAt = normalizeTime(item.CreatedAt)
	item.UpdatedAt = normalizeTime(item.UpdatedAt)

	return item, nil
}

func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
