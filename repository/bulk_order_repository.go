package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yashrajoria/streetwear-backend/models"
)

// BulkOrderRepository stores bulk enquiries.
type BulkOrderRepository interface {
	Create(ctx context.Context, order *models.BulkOrder) error
	FindAll(ctx context.Context, status models.BulkOrderStatus, page, limit int) ([]models.BulkOrder, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BulkOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BulkOrderStatus) error
}

type GormBulkOrderRepository struct {
	db *gorm.DB
}

func NewGormBulkOrderRepository(db *gorm.DB) BulkOrderRepository {
	return &GormBulkOrderRepository{db: db}
}

func (r *GormBulkOrderRepository) Create(ctx context.Context, order *models.BulkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormBulkOrderRepository) FindAll(ctx context.Context, status models.BulkOrderStatus, page, limit int) ([]models.BulkOrder, int64, error) {
	var orders []models.BulkOrder
	var total int64

	q := r.db.WithContext(ctx).Model(&models.BulkOrder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormBulkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BulkOrder, error) {
	var order models.BulkOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormBulkOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BulkOrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.BulkOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
