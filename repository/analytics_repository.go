package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/yashrajoria/streetwear-backend/models"
	awspkg "github.com/yashrajoria/streetwear-backend/pkg/aws"
)

// AnalyticsRepository keeps per-product interaction counters.
type AnalyticsRepository interface {
	Increment(ctx context.Context, productID, eventType string) error
	TopViewed(ctx context.Context, limit int) ([]models.ProductStats, error)
}

// DynamoAnalyticsRepository stores one item per product keyed by product_id.
type DynamoAnalyticsRepository struct {
	client    awspkg.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

func NewDynamoAnalyticsRepository(client awspkg.DynamoDBAPI, tableName string) *DynamoAnalyticsRepository {
	return &DynamoAnalyticsRepository{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

var counterAttributes = map[string]string{
	models.EventProductView: "views",
	models.EventAddToCart:   "add_to_carts",
}

// Increment atomically adds one to the counter for eventType.
func (r *DynamoAnalyticsRepository) Increment(ctx context.Context, productID, eventType string) error {
	attr, ok := counterAttributes[eventType]
	if !ok {
		return fmt.Errorf("unknown analytics event type %q", eventType)
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression:         aws.String("ADD #counter :one SET updated_at = :now"),
		ExpressionAttributeNames: map[string]string{"#counter": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: r.nowFunc().UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("increment %s for %s: %w", attr, productID, err)
	}
	return nil
}

// TopViewed scans the table and returns the most viewed products.
func (r *DynamoAnalyticsRepository) TopViewed(ctx context.Context, limit int) ([]models.ProductStats, error) {
	stats := []models.ProductStats{}
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan analytics: %w", err)
		}

		var page []models.ProductStats
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal analytics: %w", err)
		}
		stats = append(stats, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Views > stats[j].Views })
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
