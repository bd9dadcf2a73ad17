package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableAdmin is the control-plane subset used to provision tables
type TableAdmin interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ TableAdmin = (*dynamodb.Client)(nil)

// PostTableInput describes the posts table: key (post_id, creation_time),
// a sparse parent index and an author index, all projecting every attribute.
func PostTableInput(t PostTable) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(t.Name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("post_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("creation_time"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("parent_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("written_by"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("post_id"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("creation_time"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(t.ParentIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("parent_id"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("post_id"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
			{
				IndexName: aws.String(t.AuthorIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("written_by"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("creation_time"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}
}

// UserTableInput describes the users table keyed by email with a username index
func UserTableInput(table, usernameIndex string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("username"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(usernameIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("username"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}
}

// EnsureTable creates the table unless it already exists and waits until
// it is active. It reports whether the table was created.
func EnsureTable(ctx context.Context, api TableAdmin, in *dynamodb.CreateTableInput, wait time.Duration) (bool, error) {
	_, err := api.CreateTable(ctx, in)
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", aws.ToString(in.TableName), err)
	}

	waiter := dynamodb.NewTableExistsWaiter(api)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: in.TableName}, wait); err != nil {
		return true, fmt.Errorf("table %s did not become active: %w", aws.ToString(in.TableName), err)
	}
	return true, nil
}
