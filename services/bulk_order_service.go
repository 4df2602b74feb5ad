package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

// BulkOrderPage is one page of bulk enquiries.
type BulkOrderPage struct {
	Items []models.BulkOrder `json:"items"`
	Total int64              `json:"total"`
}

type BulkOrderService interface {
	Submit(ctx context.Context, input *models.BulkOrderInput) (*models.BulkOrder, *ServiceError)
	List(ctx context.Context, status string, page, limit int) (*BulkOrderPage, *ServiceError)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *models.BulkStatusUpdate) (*models.BulkOrder, *ServiceError)
}

type bulkOrderServiceImpl struct {
	repo    repository.BulkOrderRepository
	logger  *zap.Logger
	nowFunc func() time.Time
}

func NewBulkOrderService(repo repository.BulkOrderRepository, logger *zap.Logger) BulkOrderService {
	return &bulkOrderServiceImpl{repo: repo, logger: logger, nowFunc: time.Now}
}

func (s *bulkOrderServiceImpl) Submit(ctx context.Context, input *models.BulkOrderInput) (*models.BulkOrder, *ServiceError) {
	if input.Quantity < models.MinBulkQuantity {
		return nil, badRequest(fmt.Sprintf("Bulk orders start at %d pieces", models.MinBulkQuantity))
	}
	if input.RequiredBy != nil && input.RequiredBy.Before(s.nowFunc()) {
		return nil, badRequest("required_by must be in the future")
	}

	order := &models.BulkOrder{
		CompanyName: strings.TrimSpace(input.CompanyName),
		ContactName: strings.TrimSpace(input.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       input.Phone,
		ProductType: strings.TrimSpace(input.ProductType),
		Quantity:    input.Quantity,
		RequiredBy:  input.RequiredBy,
		Message:     input.Message,
		Status:      models.BulkStatusNew,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, internal(err)
	}
	s.logger.Info("Bulk enquiry received", zap.String("bulk_order_id", order.ID.String()), zap.Int("quantity", order.Quantity))
	return order, nil
}

func (s *bulkOrderServiceImpl) List(ctx context.Context, status string, page, limit int) (*BulkOrderPage, *ServiceError) {
	page, limit = NormalizePage(page, limit)
	items, total, err := s.repo.FindAll(ctx, models.BulkOrderStatus(status), page, limit)
	if err != nil {
		return nil, internal(err)
	}
	return &BulkOrderPage{Items: items, Total: total}, nil
}

func (s *bulkOrderServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, input *models.BulkStatusUpdate) (*models.BulkOrder, *ServiceError) {
	if err := s.repo.UpdateStatus(ctx, id, models.BulkOrderStatus(input.Status)); err != nil {
		return nil, lookupError(err, "Bulk order not found")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Bulk order not found")
	}
	return order, nil
}
