package models

import (
	"time"

	"github.com/google/uuid"
)

// Size is one of the garment sizes the store sells.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// ValidSizes lists sizes in display order.
var ValidSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// IsValidSize reports whether s is a known size.
func IsValidSize(s string) bool {
	for _, v := range ValidSizes {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Gift types used to tag products for the gifting pages.
const (
	GiftTypeNone   = "none"
	GiftTypeForHim = "for_him"
	GiftTypeForHer = "for_her"
	GiftTypeUnisex = "unisex"
	GiftTypeCouple = "couple"
)

const (
	MinProductImages = 1
	MaxProductImages = 5
)

// Product is a catalog entry.
type Product struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string      `gorm:"type:varchar(120);not null" json:"name"`
	Slug           string      `gorm:"type:varchar(140);uniqueIndex;not null" json:"slug"`
	Description    string      `gorm:"type:text" json:"description"`
	Price          float64     `gorm:"not null" json:"price"`
	CompareAtPrice *float64    `json:"compare_at_price,omitempty"`
	CategoryID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"category_id"`
	Category       *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images         StringList  `gorm:"type:jsonb;not null" json:"images"`
	ColorImages    ColorImages `gorm:"type:jsonb" json:"color_images,omitempty"`
	IsCustomizable bool        `gorm:"not null" json:"is_customizable"`
	GiftType       string      `gorm:"type:varchar(20)" json:"gift_type,omitempty"`
	Stock          int         `gorm:"not null" json:"stock"`
	Sizes          StringList  `gorm:"type:jsonb" json:"sizes"`
	Colors         StringList  `gorm:"type:jsonb" json:"colors"`
	Tags           StringList  `gorm:"type:jsonb" json:"tags"`
	IsActive       bool        `gorm:"not null;index" json:"is_active"`
	IsFeatured     bool        `gorm:"not null" json:"is_featured"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductInput is the create/replace payload for a product.
type ProductInput struct {
	Name           string              `json:"name" validate:"required,min=2,max=120"`
	Slug           string              `json:"slug" validate:"omitempty,max=140,slug"`
	Description    string              `json:"description" validate:"max=5000"`
	Price          float64             `json:"price" validate:"gt=0"`
	CompareAtPrice *float64            `json:"compare_at_price" validate:"omitempty,gtefield=Price"`
	CategoryID     string              `json:"category_id" validate:"required,uuid"`
	Images         []string            `json:"images" validate:"min=1,max=5,dive,required,url"`
	ColorImages    map[string][]string `json:"color_images"`
	IsCustomizable bool                `json:"is_customizable"`
	GiftType       string              `json:"gift_type" validate:"omitempty,oneof=none for_him for_her unisex couple"`
	Stock          int                 `json:"stock" validate:"gte=0"`
	Sizes          []string            `json:"sizes" validate:"omitempty,unique,dive,size"`
	Colors         []string            `json:"colors" validate:"max=20,dive,required,max=40"`
	Tags           []string            `json:"tags" validate:"max=20,dive,required,max=40"`
	IsActive       *bool               `json:"is_active"`
	IsFeatured     bool                `json:"is_featured"`
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	CategoryID      *uuid.UUID
	CategorySlug    string
	Featured        *bool
	Customizable    *bool
	GiftType        string
	Search          string
	MinPrice        *float64
	MaxPrice        *float64
	Sort            string
	IncludeInactive bool
	Page            int
	Limit           int
}
