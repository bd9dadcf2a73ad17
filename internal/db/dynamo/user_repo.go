package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"Delver/internal/core/users"
)

type dynamoUserRepo struct {
	api   API
	table string
	index string
}

// NewUserRepository reads accounts through the username index of the users table
func NewUserRepository(api API, table, usernameIndex string) users.UserRepository {
	return &dynamoUserRepo{api: api, table: table, index: usernameIndex}
}

func (r *dynamoUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("username").Equal(expression.Value(username))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	out, err := r.api.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, users.ErrUserNotFound
	}

	var u users.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}
