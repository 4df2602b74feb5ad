package repository_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

type fakeDynamo struct {
	updates []*dynamodb.UpdateItemInput
	pages   []*dynamodb.ScanOutput
	scans   int
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	page := f.pages[f.scans]
	f.scans++
	return page, nil
}

func statsItem(t *testing.T, id string, views int64) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(models.ProductStats{ProductID: id, Views: views})
	require.NoError(t, err)
	return item
}

func TestAnalyticsIncrement_AddsToCounter(t *testing.T) {
	fake := &fakeDynamo{}
	repo := repository.NewDynamoAnalyticsRepository(fake, "product-analytics")

	require.NoError(t, repo.Increment(context.Background(), "p-1", models.EventAddToCart))
	require.Len(t, fake.updates, 1)

	in := fake.updates[0]
	assert.Equal(t, "product-analytics", *in.TableName)
	assert.Equal(t, "add_to_carts", in.ExpressionAttributeNames["#counter"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "p-1"}, in.Key["product_id"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, in.ExpressionAttributeValues[":one"])
}

func TestAnalyticsIncrement_UnknownEvent(t *testing.T) {
	fake := &fakeDynamo{}
	repo := repository.NewDynamoAnalyticsRepository(fake, "product-analytics")

	assert.Error(t, repo.Increment(context.Background(), "p-1", "purchase"))
	assert.Empty(t, fake.updates)
}

func TestAnalyticsTopViewed_FollowsPagesAndSorts(t *testing.T) {
	fake := &fakeDynamo{pages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{statsItem(t, "a", 3), statsItem(t, "b", 10)},
			LastEvaluatedKey: map[string]types.AttributeValue{"product_id": &types.AttributeValueMemberS{Value: "b"}},
		},
		{Items: []map[string]types.AttributeValue{statsItem(t, "c", 7)}},
	}}
	repo := repository.NewDynamoAnalyticsRepository(fake, "product-analytics")

	top, err := repo.TopViewed(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.scans)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ProductID)
	assert.Equal(t, "c", top[1].ProductID)
}
