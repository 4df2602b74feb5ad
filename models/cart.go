package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a cart. Exactly one of UserID and SessionID is set.
type CartItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	SessionID *string    `gorm:"type:varchar(64);index" json:"session_id,omitempty"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product   `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	Size      string     `gorm:"type:varchar(8)" json:"size,omitempty"`
	Color     string     `gorm:"type:varchar(40)" json:"color,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartOwner identifies whose cart an operation touches.
type CartOwner struct {
	UserID    *uuid.UUID
	SessionID string
}

// IsZero reports whether no owner could be resolved.
func (o CartOwner) IsZero() bool {
	return o.UserID == nil && o.SessionID == ""
}

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
	Size      string `json:"size" validate:"omitempty,size"`
	Color     string `json:"color" validate:"max=40"`
}

// UpdateCartItemRequest sets a line's quantity. Zero or less removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=99"`
}

// CartLine is a cart item joined with its current product data.
type CartLine struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	LineTotal float64   `json:"line_total"`
}

// Cart is the resolved view of an owner's cart.
type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}
