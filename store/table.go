package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

// TableClient is the subset of the DynamoDB API used by CreateTable.
type TableClient interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// tableWaitTimeout bounds how long CreateTable waits for the table to become active.
const tableWaitTimeout = 2 * time.Minute

// CreateTable creates the items table and its id index if the table does not exist yet.
// It returns once the table is active.
func CreateTable(ctx context.Context, client TableClient, config Config) error {
	config.validate()

	_, err := client.CreateTable(ctx, CreateTableInput(config))
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return errors.Wrapf(err, "create table %s", config.TableName)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(config.TableName),
	}, tableWaitTimeout)
	if err != nil {
		return errors.Wrapf(err, "wait for table %s", config.TableName)
	}

	return nil
}

// CreateTableInput describes the items table: hash key "description",
// range key "id", and a global secondary index on "id".
func CreateTableInput(config Config) *dynamodb.CreateTableInput {
	config.validate()

	return &dynamodb.CreateTableInput{
		TableName:   aws.String(config.TableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(AttrDescription), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(AttrID), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(AttrDescription), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(AttrID), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(config.IDIndexName),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(AttrID), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeAll,
				},
			},
		},
	}
}
