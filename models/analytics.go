package models

import "time"

// Analytics event types accepted from the storefront.
const (
	EventProductView = "product_view"
	EventAddToCart   = "add_to_cart"
)

// AnalyticsEventInput is a storefront interaction beacon.
type AnalyticsEventInput struct {
	Type      string `json:"type" validate:"required,oneof=product_view add_to_cart"`
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// ProductStats holds interaction counters for one product. Stored in DynamoDB.
type ProductStats struct {
	ProductID  string    `dynamodbav:"product_id" json:"product_id"`
	Views      int64     `dynamodbav:"views" json:"views"`
	AddToCarts int64     `dynamodbav:"add_to_carts" json:"add_to_carts"`
	UpdatedAt  time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// DashboardSummary is the admin analytics overview.
type DashboardSummary struct {
	OrdersByStatus        map[OrderStatus]int64 `json:"orders_by_status"`
	Revenue               float64               `json:"revenue"`
	ProductCount          int64                 `json:"product_count"`
	UnreadMessages        int64                 `json:"unread_messages"`
	PendingDesignRequests int64                 `json:"pending_design_requests"`
	TopViewed             []ProductStats        `json:"top_viewed"`
}
