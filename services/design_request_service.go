package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

// DesignRequestPage is one page of design requests.
type DesignRequestPage struct {
	Items []models.DesignRequest `json:"items"`
	Total int64                  `json:"total"`
}

// DesignRequestService handles customization and custom print requests.
// Every operation is scoped to one kind.
type DesignRequestService interface {
	Submit(ctx context.Context, kind models.DesignRequestKind, input *models.DesignRequestInput) (*models.DesignRequest, *ServiceError)
	List(ctx context.Context, kind models.DesignRequestKind, status string, page, limit int) (*DesignRequestPage, *ServiceError)
	UpdateStatus(ctx context.Context, kind models.DesignRequestKind, id string, input *models.DesignStatusUpdate) (*models.DesignRequest, *ServiceError)
}

type designRequestServiceImpl struct {
	repo   repository.DesignRequestRepository
	logger *zap.Logger
}

func NewDesignRequestService(repo repository.DesignRequestRepository, logger *zap.Logger) DesignRequestService {
	return &designRequestServiceImpl{repo: repo, logger: logger}
}

func (s *designRequestServiceImpl) Submit(ctx context.Context, kind models.DesignRequestKind, input *models.DesignRequestInput) (*models.DesignRequest, *ServiceError) {
	switch kind {
	case models.KindCustomization:
		if input.ProductID == "" {
			return nil, badRequest("product_id is required for a customization")
		}
	case models.KindCustomPrint:
		if input.ImageURL == "" && strings.TrimSpace(input.Text) == "" {
			return nil, badRequest("Provide an image_url or text for the print")
		}
	default:
		return nil, badRequest("Unknown request kind")
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	req := &models.DesignRequest{
		Kind:         kind,
		ProductID:    input.ProductID,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		ImageURL:     input.ImageURL,
		Text:         input.Text,
		Color:        input.Color,
		Size:         input.Size,
		Quantity:     quantity,
		Placement:    input.Placement,
		Instructions: input.Instructions,
		Status:       models.DesignStatusPending,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		logger.For(ctx, s.logger).Error("Failed to save design request", zap.Error(err), zap.String("kind", string(kind)))
		return nil, internal(err)
	}

	metrics.DesignRequestsTotal.WithLabelValues(string(kind)).Inc()
	return req, nil
}

func (s *designRequestServiceImpl) List(ctx context.Context, kind models.DesignRequestKind, status string, page, limit int) (*DesignRequestPage, *ServiceError) {
	page, limit = NormalizePage(page, limit)
	items, total, err := s.repo.FindAll(ctx, kind, models.DesignStatus(status), page, limit)
	if err != nil {
		return nil, internal(err)
	}
	return &DesignRequestPage{Items: items, Total: total}, nil
}

// UpdateStatus treats a request of the other kind as missing.
func (s *designRequestServiceImpl) UpdateStatus(ctx context.Context, kind models.DesignRequestKind, id string, input *models.DesignStatusUpdate) (*models.DesignRequest, *ServiceError) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Request not found")
	}
	if existing.Kind != kind {
		return nil, notFound("Request not found")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, models.DesignStatus(input.Status), input.AdminNotes)
	if err != nil {
		return nil, lookupError(err, "Request not found")
	}
	return updated, nil
}
