package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yashrajoria/streetwear-backend/models"
)

// AnnouncementRepository reads and writes the single site banner row.
type AnnouncementRepository interface {
	Get(ctx context.Context) (*models.Announcement, error)
	Save(ctx context.Context, a *models.Announcement) error
}

type GormAnnouncementRepository struct {
	db *gorm.DB
}

func NewGormAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Get returns a disabled, empty banner when none has been saved yet.
func (r *GormAnnouncementRepository) Get(ctx context.Context) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.WithContext(ctx).Where("id = ?", models.AnnouncementID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Announcement{ID: models.AnnouncementID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Save upserts the banner row.
func (r *GormAnnouncementRepository) Save(ctx context.Context, a *models.Announcement) error {
	a.ID = models.AnnouncementID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"message", "link_text", "link_url", "is_enabled", "updated_at"}),
		}).
		Create(a).Error
}
