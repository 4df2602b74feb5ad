package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yashrajoria/streetwear-backend/models"
)

// CartRepository stores cart lines for users and guest sessions.
type CartRepository interface {
	FindByOwner(ctx context.Context, owner models.CartOwner) ([]models.CartItem, error)
	FindLine(ctx context.Context, owner models.CartOwner, productID uuid.UUID, size, color string) (*models.CartItem, error)
	FindByIDForOwner(ctx context.Context, id uuid.UUID, owner models.CartOwner) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearOwner(ctx context.Context, owner models.CartOwner) error
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func ownerScope(owner models.CartOwner) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if owner.UserID != nil {
			return db.Where("user_id = ?", *owner.UserID)
		}
		return db.Where("session_id = ?", owner.SessionID)
	}
}

// FindByOwner returns the owner's lines, oldest first, with current product data.
func (r *GormCartRepository) FindByOwner(ctx context.Context, owner models.CartOwner) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Product").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLine finds the owner's existing line for the same product, size and color.
func (r *GormCartRepository) FindLine(ctx context.Context, owner models.CartOwner, productID uuid.UUID, size, color string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// FindByIDForOwner returns ErrNotFound when the line belongs to someone else.
func (r *GormCartRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, owner models.CartOwner) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *GormCartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{}).Error
}

// ClearOwner removes every line of the owner's cart.
func (r *GormCartRepository) ClearOwner(ctx context.Context, owner models.CartOwner) error {
	if owner.IsZero() {
		return nil
	}
	return r.db.WithContext(ctx).Scopes(ownerScope(owner)).Delete(&models.CartItem{}).Error
}
