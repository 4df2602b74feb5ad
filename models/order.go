package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

// PaymentMethodCOD is the only method currently accepted at checkout.
const PaymentMethodCOD PaymentMethod = "cod"

// PaymentStatus tracks collection of the order amount.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// ShippingAddress is embedded in the orders table with a shipping_ prefix.
type ShippingAddress struct {
	Line1   string `gorm:"type:varchar(200)" json:"line1"`
	Line2   string `gorm:"type:varchar(200)" json:"line2,omitempty"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	Pincode string `gorm:"type:varchar(6)" json:"pincode"`
	Country string `gorm:"type:varchar(60)" json:"country"`
}

// OrderItem is a snapshot of a product at checkout time.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Image     string    `json:"image,omitempty"`
}

// Order is a placed checkout. UserID is nil for guest checkouts.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CustomerName    string          `gorm:"type:varchar(100);not null" json:"customer_name"`
	Email           string          `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone           string          `gorm:"type:varchar(20);not null" json:"phone"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	Items           OrderItems      `gorm:"type:jsonb;not null" json:"items"`
	TotalAmount     float64         `gorm:"not null" json:"total_amount"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null" json:"payment_status"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderEvent is one entry of an order's append-only timeline.
type OrderEvent struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes     string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string      `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// AddressInput is the shipping address as submitted at checkout.
type AddressInput struct {
	Line1   string `json:"line1" validate:"required,max=200"`
	Line2   string `json:"line2" validate:"max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Pincode string `json:"pincode" validate:"required,pincode"`
	Country string `json:"country" validate:"max=60"`
}

// OrderItemInput is one cart line submitted at checkout.
type OrderItemInput struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Name      string  `json:"name" validate:"required,max=120"`
	Price     float64 `json:"price" validate:"gt=0"`
	Quantity  int     `json:"quantity" validate:"min=1,max=100"`
	Size      string  `json:"size" validate:"omitempty,size"`
	Color     string  `json:"color" validate:"max=40"`
	Image     string  `json:"image" validate:"omitempty,url"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CustomerName    string           `json:"customer_name" validate:"required,min=2,max=100"`
	Email           string           `json:"email" validate:"required,email"`
	Phone           string           `json:"phone" validate:"required,in_phone"`
	ShippingAddress AddressInput     `json:"shipping_address"`
	Items           []OrderItemInput `json:"items" validate:"min=1,max=50,dive"`
	TotalAmount     float64          `json:"total_amount" validate:"gt=0"`
	PaymentMethod   string           `json:"payment_method" validate:"required,oneof=cod"`
	Notes           string           `json:"notes" validate:"max=500"`
}

// UpdateOrderRequest edits an order's contact and payment details. Status is
// changed only through UpdateOrderStatusRequest.
type UpdateOrderRequest struct {
	CustomerName    *string       `json:"customer_name" validate:"omitempty,min=2,max=100"`
	Email           *string       `json:"email" validate:"omitempty,email"`
	Phone           *string       `json:"phone" validate:"omitempty,in_phone"`
	ShippingAddress *AddressInput `json:"shipping_address"`
	PaymentStatus   *string       `json:"payment_status" validate:"omitempty,oneof=pending paid refunded failed"`
	Notes           *string       `json:"notes" validate:"omitempty,max=500"`
}

// UpdateOrderStatusRequest moves an order through its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
	Notes  string `json:"notes" validate:"max=500"`
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Status OrderStatus
	Email  string
	Page   int
	Limit  int
}

// OrderWithTimeline is an order plus its events, newest first.
type OrderWithTimeline struct {
	Order    *Order       `json:"order"`
	Timeline []OrderEvent `json:"timeline"`
}
