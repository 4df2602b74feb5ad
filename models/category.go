package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for navigation.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(80);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	SortOrder   int       `gorm:"not null" json:"sort_order"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CategoryInput is the create/replace payload for a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Slug        string `json:"slug" validate:"omitempty,max=100,slug"`
	Description string `json:"description" validate:"max=1000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}
