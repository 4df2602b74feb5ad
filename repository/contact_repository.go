package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yashrajoria/streetwear-backend/models"
)

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	FindAll(ctx context.Context, status models.MessageStatus, page, limit int) ([]models.ContactMessage, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	Update(ctx context.Context, msg *models.ContactMessage) error
	CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error)
}

type GormContactRepository struct {
	db *gorm.DB
}

func NewGormContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *GormContactRepository) FindAll(ctx context.Context, status models.MessageStatus, page, limit int) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if status != "" {
			return db.Where("status = ?", status)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (r *GormContactRepository) Update(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).
		Model(msg).
		Select("status", "admin_notes", "updated_at").
		Updates(msg).Error
}

func (r *GormContactRepository) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
