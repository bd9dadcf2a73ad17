package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmin struct {
	createErr error
	created   []string
}

func (f *fakeAdmin) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, aws.ToString(in.TableName))
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeAdmin) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   in.TableName,
		TableStatus: types.TableStatusActive,
	}}, nil
}

func TestPostTableInput(t *testing.T) {
	in := PostTableInput(testTable)

	assert.Equal(t, testTable.Name, aws.ToString(in.TableName))
	require.Len(t, in.KeySchema, 2)
	assert.Equal(t, "post_id", aws.ToString(in.KeySchema[0].AttributeName))
	assert.Equal(t, types.KeyTypeRange, in.KeySchema[1].KeyType)

	names := make([]string, 0, len(in.GlobalSecondaryIndexes))
	for _, gsi := range in.GlobalSecondaryIndexes {
		names = append(names, aws.ToString(gsi.IndexName))
		assert.Equal(t, types.ProjectionTypeAll, gsi.Projection.ProjectionType)
	}
	assert.ElementsMatch(t, []string{testTable.ParentIndex, testTable.AuthorIndex}, names)
}

func TestEnsureTable(t *testing.T) {
	ctx := context.Background()

	admin := &fakeAdmin{}
	created, err := EnsureTable(ctx, admin, UserTableInput("Dungeon_Delver_Users", "username-index"), time.Second)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"Dungeon_Delver_Users"}, admin.created)

	admin = &fakeAdmin{createErr: &types.ResourceInUseException{Message: aws.String("exists")}}
	created, err = EnsureTable(ctx, admin, PostTableInput(testTable), time.Second)
	require.NoError(t, err)
	assert.False(t, created)

	admin = &fakeAdmin{createErr: errors.New("access denied")}
	_, err = EnsureTable(ctx, admin, PostTableInput(testTable), time.Second)
	assert.ErrorContains(t, err, "access denied")
}
