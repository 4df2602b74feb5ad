package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

type AnnouncementService interface {
	Get(ctx context.Context) (*models.Announcement, *ServiceError)
	Update(ctx context.Context, input *models.AnnouncementInput) (*models.Announcement, *ServiceError)
}

type announcementServiceImpl struct {
	repo   repository.AnnouncementRepository
	logger *zap.Logger
}

func NewAnnouncementService(repo repository.AnnouncementRepository, logger *zap.Logger) AnnouncementService {
	return &announcementServiceImpl{repo: repo, logger: logger}
}

func (s *announcementServiceImpl) Get(ctx context.Context) (*models.Announcement, *ServiceError) {
	a, err := s.repo.Get(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return a, nil
}

// Update replaces the single banner row.
func (s *announcementServiceImpl) Update(ctx context.Context, input *models.AnnouncementInput) (*models.Announcement, *ServiceError) {
	if input.IsEnabled && strings.TrimSpace(input.Message) == "" {
		return nil, badRequest("An enabled announcement needs a message")
	}
	a := &models.Announcement{
		ID:        models.AnnouncementID,
		Message:   strings.TrimSpace(input.Message),
		LinkText:  strings.TrimSpace(input.LinkText),
		LinkURL:   strings.TrimSpace(input.LinkURL),
		IsEnabled: input.IsEnabled,
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, internal(err)
	}
	return a, nil
}
