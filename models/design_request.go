package models

import "time"

// DesignRequestKind separates product customizations from fully custom prints.
type DesignRequestKind string

const (
	KindCustomization DesignRequestKind = "customization"
	KindCustomPrint   DesignRequestKind = "custom_print"
)

// DesignStatus is the admin review state of a design request.
type DesignStatus string

const (
	DesignStatusPending   DesignStatus = "pending"
	DesignStatusReviewing DesignStatus = "reviewing"
	DesignStatusApproved  DesignStatus = "approved"
	DesignStatusRejected  DesignStatus = "rejected"
	DesignStatusCompleted DesignStatus = "completed"
)

// DesignRequest is a customer-submitted customization or custom print order.
// Stored in MongoDB.
type DesignRequest struct {
	ID           string            `bson:"_id" json:"id"`
	Kind         DesignRequestKind `bson:"kind" json:"kind"`
	ProductID    string            `bson:"product_id,omitempty" json:"product_id,omitempty"`
	Name         string            `bson:"name" json:"name"`
	Email        string            `bson:"email" json:"email"`
	Phone        string            `bson:"phone,omitempty" json:"phone,omitempty"`
	ImageURL     string            `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Text         string            `bson:"text,omitempty" json:"text,omitempty"`
	Color        string            `bson:"color,omitempty" json:"color,omitempty"`
	Size         string            `bson:"size,omitempty" json:"size,omitempty"`
	Quantity     int               `bson:"quantity" json:"quantity"`
	Placement    string            `bson:"placement,omitempty" json:"placement,omitempty"`
	Instructions string            `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Status       DesignStatus      `bson:"status" json:"status"`
	AdminNotes   string            `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}

// DesignRequestInput is the public submission payload.
type DesignRequestInput struct {
	ProductID    string `json:"product_id" validate:"omitempty,uuid"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,in_phone"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	Text         string `json:"text" validate:"max=200"`
	Color        string `json:"color" validate:"max=40"`
	Size         string `json:"size" validate:"omitempty,size"`
	Quantity     int    `json:"quantity" validate:"min=1,max=500"`
	Placement    string `json:"placement" validate:"omitempty,oneof=front back sleeve left_chest"`
	Instructions string `json:"instructions" validate:"max=2000"`
}

// DesignStatusUpdate is the admin review payload.
type DesignStatusUpdate struct {
	Status     string `json:"status" validate:"required,oneof=pending reviewing approved rejected completed"`
	AdminNotes string `json:"admin_notes" validate:"max=2000"`
}
