package models

import (
	"time"

	"github.com/google/uuid"
)

// AnnouncementID is the primary key of the single announcement row.
const AnnouncementID = 1

// Announcement is the site-wide banner.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Message   string    `gorm:"type:varchar(280)" json:"message"`
	LinkText  string    `gorm:"type:varchar(40)" json:"link_text,omitempty"`
	LinkURL   string    `json:"link_url,omitempty"`
	IsEnabled bool      `gorm:"not null" json:"is_enabled"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AnnouncementInput replaces the banner.
type AnnouncementInput struct {
	Message   string `json:"message" validate:"required_if=IsEnabled true,max=280"`
	LinkText  string `json:"link_text" validate:"max=40"`
	LinkURL   string `json:"link_url" validate:"omitempty,url"`
	IsEnabled bool   `json:"is_enabled"`
}

// MessageStatus is the inbox state of a contact message.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusReplied  MessageStatus = "replied"
	MessageStatusArchived MessageStatus = "archived"
)

// ContactMessage is a submission from the contact form.
type ContactMessage struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string        `gorm:"type:varchar(100);not null" json:"name"`
	Email      string        `gorm:"type:varchar(255);not null" json:"email"`
	Phone      string        `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Subject    string        `gorm:"type:varchar(200);not null" json:"subject"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	Status     MessageStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminNotes string        `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// ContactInput is the public contact form payload.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,in_phone"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContactUpdate is the admin inbox update payload.
type ContactUpdate struct {
	Status     *string `json:"status" validate:"omitempty,oneof=new read replied archived"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// BulkOrderStatus tracks a bulk enquiry through sales.
type BulkOrderStatus string

const (
	BulkStatusNew       BulkOrderStatus = "new"
	BulkStatusContacted BulkOrderStatus = "contacted"
	BulkStatusQuoted    BulkOrderStatus = "quoted"
	BulkStatusClosed    BulkOrderStatus = "closed"
)

// MinBulkQuantity is the smallest quantity accepted as a bulk enquiry.
const MinBulkQuantity = 10

// BulkOrder is a corporate or team bulk enquiry.
type BulkOrder struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyName string          `gorm:"type:varchar(150)" json:"company_name,omitempty"`
	ContactName string          `gorm:"type:varchar(100);not null" json:"contact_name"`
	Email       string          `gorm:"type:varchar(255);not null" json:"email"`
	Phone       string          `gorm:"type:varchar(20);not null" json:"phone"`
	ProductType string          `gorm:"type:varchar(100);not null" json:"product_type"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	RequiredBy  *time.Time      `json:"required_by,omitempty"`
	Message     string          `gorm:"type:text" json:"message,omitempty"`
	Status      BulkOrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// BulkOrderInput is the public bulk enquiry payload.
type BulkOrderInput struct {
	CompanyName string     `json:"company_name" validate:"max=150"`
	ContactName string     `json:"contact_name" validate:"required,min=2,max=100"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       string     `json:"phone" validate:"required,in_phone"`
	ProductType string     `json:"product_type" validate:"required,max=100"`
	Quantity    int        `json:"quantity" validate:"min=10,max=100000"`
	RequiredBy  *time.Time `json:"required_by"`
	Message     string     `json:"message" validate:"max=5000"`
}

// BulkStatusUpdate moves a bulk enquiry along.
type BulkStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=new contacted quoted closed"`
}
