package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

// ContactPage is one page of the contact inbox.
type ContactPage struct {
	Items []models.ContactMessage `json:"items"`
	Total int64                   `json:"total"`
}

type ContactService interface {
	Submit(ctx context.Context, input *models.ContactInput) (*models.ContactMessage, *ServiceError)
	List(ctx context.Context, status string, page, limit int) (*ContactPage, *ServiceError)
	Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, input *models.ContactUpdate) (*models.ContactMessage, *ServiceError)
}

type contactServiceImpl struct {
	repo   repository.ContactRepository
	logger *zap.Logger
}

func NewContactService(repo repository.ContactRepository, logger *zap.Logger) ContactService {
	return &contactServiceImpl{repo: repo, logger: logger}
}

func (s *contactServiceImpl) Submit(ctx context.Context, input *models.ContactInput) (*models.ContactMessage, *ServiceError) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   input.Phone,
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  models.MessageStatusNew,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, internal(err)
	}
	return msg, nil
}

func (s *contactServiceImpl) List(ctx context.Context, status string, page, limit int) (*ContactPage, *ServiceError) {
	page, limit = NormalizePage(page, limit)
	items, total, err := s.repo.FindAll(ctx, models.MessageStatus(status), page, limit)
	if err != nil {
		return nil, internal(err)
	}
	return &ContactPage{Items: items, Total: total}, nil
}

// Get marks a new message as read.
func (s *contactServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.ContactMessage, *ServiceError) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Message not found")
	}
	if msg.Status == models.MessageStatusNew {
		msg.Status = models.MessageStatusRead
		if err := s.repo.Update(ctx, msg); err != nil {
			s.logger.Warn("Failed to mark message read", zap.Error(err), zap.String("message_id", id.String()))
		}
	}
	return msg, nil
}

func (s *contactServiceImpl) Update(ctx context.Context, id uuid.UUID, input *models.ContactUpdate) (*models.ContactMessage, *ServiceError) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Message not found")
	}
	if input.Status != nil {
		msg.Status = models.MessageStatus(*input.Status)
	}
	if input.AdminNotes != nil {
		msg.AdminNotes = *input.AdminNotes
	}
	if err := s.repo.Update(ctx, msg); err != nil {
		return nil, internal(err)
	}
	return msg, nil
}
