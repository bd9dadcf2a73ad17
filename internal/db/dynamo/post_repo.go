package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"Delver/internal/core/posts"
)

// PostTable names a posts table and its secondary indexes
type PostTable struct {
	Name        string
	ParentIndex string // partition key parent_id, sort key post_id
	AuthorIndex string // partition key written_by, sort key creation_time
}

type dynamoPostRepo struct {
	api   API
	table PostTable
}

// NewPostRepository creates a posts.Repository over a DynamoDB table.
// Reaction sets are stored as string sets so a transition is a single
// UpdateItem with ADD/DELETE actions.
func NewPostRepository(api API, table PostTable) posts.Repository {
	return &dynamoPostRepo{api: api, table: table}
}

func (r *dynamoPostRepo) Get(ctx context.Context, key posts.Key) (*posts.Post, error) {
	k, err := marshalKey(key)
	if err != nil {
		return nil, err
	}
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table.Name),
		Key:            k,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if out.Item == nil {
		return nil, posts.ErrNotFound
	}
	return unmarshalPost(out.Item)
}

func (r *dynamoPostRepo) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("post_id").Equal(expression.Value(postID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	out, err := r.api.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query post by id: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, posts.ErrNotFound
	}
	return unmarshalPost(out.Items[0])
}

func (r *dynamoPostRepo) Create(ctx context.Context, post *posts.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table.Name),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(post_id)"),
	})
	if failed, _ := conditionFailed(err); failed {
		return posts.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to put post: %w", err)
	}
	return nil
}

func (r *dynamoPostRepo) UpdateBody(ctx context.Context, key posts.Key, author, body string) error {
	return r.update(ctx, key,
		"SET #body = :body",
		"attribute_exists(post_id) AND written_by = :author",
		map[string]string{"#body": "body"},
		map[string]types.AttributeValue{
			":body":   &types.AttributeValueMemberS{Value: body},
			":author": &types.AttributeValueMemberS{Value: author},
		})
}

// ApplyReaction builds one UpdateItem whose condition pins the user's
// current membership in both sets.
func (r *dynamoPostRepo) ApplyReaction(ctx context.Context, key posts.Key, username string, from, to posts.Reaction) error {
	cond, update := reactionExpressions(from, to)
	return r.update(ctx, key, update, cond, nil,
		map[string]types.AttributeValue{
			":u":    &types.AttributeValueMemberS{Value: username},
			":uset": &types.AttributeValueMemberSS{Value: []string{username}},
		})
}

func (r *dynamoPostRepo) ReparentChild(ctx context.Context, key posts.Key, expectedParent, newParent string) error {
	values := map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberS{Value: expectedParent},
	}
	update := "REMOVE parent_id"
	if newParent != "" {
		update = "SET parent_id = :parent"
		values[":parent"] = &types.AttributeValueMemberS{Value: newParent}
	}
	return r.update(ctx, key, update, "attribute_exists(post_id) AND parent_id = :expected", nil, values)
}

func (r *dynamoPostRepo) Delete(ctx context.Context, key posts.Key) error {
	k, err := marshalKey(key)
	if err != nil {
		return err
	}
	_, err = r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table.Name),
		Key:                 k,
		ConditionExpression: aws.String("attribute_exists(post_id) AND attribute_exists(creation_time)"),
	})
	if failed, _ := conditionFailed(err); failed {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *dynamoPostRepo) ListByParent(ctx context.Context, parentID string) ([]*posts.Post, error) {
	return r.queryIndex(ctx, r.table.ParentIndex, "parent_id", parentID)
}

func (r *dynamoPostRepo) ListByAuthor(ctx context.Context, username string) ([]*posts.Post, error) {
	return r.queryIndex(ctx, r.table.AuthorIndex, "written_by", username)
}

// ListTopLevel scans for items without parent_id. Top-level posts are
// absent from the sparse parent index, so a filtered scan is the only
// access path.
func (r *dynamoPostRepo) ListTopLevel(ctx context.Context) ([]*posts.Post, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.AttributeNotExists(expression.Name("parent_id"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(r.api, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table.Name),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	result := make([]*posts.Post, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posts: %w", err)
		}
		list, err := unmarshalPosts(page.Items)
		if err != nil {
			return nil, err
		}
		result = append(result, list...)
	}
	return result, nil
}

func (r *dynamoPostRepo) queryIndex(ctx context.Context, index, attr, value string) ([]*posts.Post, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attr).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(r.api, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	result := make([]*posts.Post, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", index, err)
		}
		list, err := unmarshalPosts(page.Items)
		if err != nil {
			return nil, err
		}
		result = append(result, list...)
	}
	return result, nil
}

// update runs a conditional UpdateItem and maps a failed condition to
// ErrNotFound or ErrPreconditionFailed using the returned old item.
func (r *dynamoPostRepo) update(ctx context.Context, key posts.Key, update, cond string, names map[string]string, values map[string]types.AttributeValue) error {
	k, err := marshalKey(key)
	if err != nil {
		return err
	}
	in := &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.table.Name),
		Key:                                 k,
		UpdateExpression:                    aws.String(update),
		ConditionExpression:                 aws.String(cond),
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}
	if len(names) > 0 {
		in.ExpressionAttributeNames = names
	}

	_, err = r.api.UpdateItem(ctx, in)
	if failed, existed := conditionFailed(err); failed {
		if !existed {
			return posts.ErrNotFound
		}
		return posts.ErrPreconditionFailed
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// reactionExpressions returns the condition and update expressions for a
// from -> to transition.
func reactionExpressions(from, to posts.Reaction) (cond, update string) {
	member := func(set string, in bool) string {
		if in {
			return "contains(" + set + ", :u)"
		}
		return "NOT contains(" + set + ", :u)"
	}
	cond = strings.Join([]string{
		"attribute_exists(post_id)",
		member("liked_by", from == posts.ReactionLiked),
		member("disliked_by", from == posts.ReactionDisliked),
	}, " AND ")

	var add, del []string
	switch from {
	case posts.ReactionLiked:
		del = append(del, "liked_by :uset")
	case posts.ReactionDisliked:
		del = append(del, "disliked_by :uset")
	}
	switch to {
	case posts.ReactionLiked:
		add = append(add, "liked_by :uset")
	case posts.ReactionDisliked:
		add = append(add, "disliked_by :uset")
	}

	var clauses []string
	if len(add) > 0 {
		clauses = append(clauses, "ADD "+strings.Join(add, ", "))
	}
	if len(del) > 0 {
		clauses = append(clauses, "DELETE "+strings.Join(del, ", "))
	}
	return cond, strings.Join(clauses, " ")
}

func marshalKey(key posts.Key) (map[string]types.AttributeValue, error) {
	k, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return k, nil
}

func unmarshalPost(item map[string]types.AttributeValue) (*posts.Post, error) {
	var p posts.Post
	if err := attributevalue.UnmarshalMap(item, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return p.Normalize(), nil
}

func unmarshalPosts(items []map[string]types.AttributeValue) ([]*posts.Post, error) {
	list := make([]*posts.Post, 0, len(items))
	for _, item := range items {
		p, err := unmarshalPost(item)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}
