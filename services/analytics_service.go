package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

const topViewedLimit = 10

type AnalyticsService interface {
	Track(ctx context.Context, input *models.AnalyticsEventInput) *ServiceError
	Dashboard(ctx context.Context) (*models.DashboardSummary, *ServiceError)
}

// AnalyticsDeps groups the stores the dashboard reads from. Counters may be
// nil, in which case tracking is a no-op.
type AnalyticsDeps struct {
	Counters       repository.AnalyticsRepository
	Orders         repository.OrderRepository
	Products       repository.ProductRepository
	Contacts       repository.ContactRepository
	DesignRequests repository.DesignRequestRepository
}

type analyticsServiceImpl struct {
	deps   AnalyticsDeps
	logger *zap.Logger
}

func NewAnalyticsService(deps AnalyticsDeps, logger *zap.Logger) AnalyticsService {
	return &analyticsServiceImpl{deps: deps, logger: logger}
}

func (s *analyticsServiceImpl) Track(ctx context.Context, input *models.AnalyticsEventInput) *ServiceError {
	if input.Type != models.EventProductView && input.Type != models.EventAddToCart {
		return badRequest("Unknown event type")
	}
	if _, err := uuid.Parse(input.ProductID); err != nil {
		return badRequest("Invalid product_id")
	}
	if s.deps.Counters == nil {
		return nil
	}
	if err := s.deps.Counters.Increment(ctx, input.ProductID, input.Type); err != nil {
		logger.For(ctx, s.logger).Warn("Failed to record analytics event", zap.Error(err), zap.String("type", input.Type))
		return internal(err)
	}
	return nil
}

// Dashboard gathers the admin overview from every store concurrently.
func (s *analyticsServiceImpl) Dashboard(ctx context.Context) (*models.DashboardSummary, *ServiceError) {
	summary := &models.DashboardSummary{TopViewed: []models.ProductStats{}}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.deps.Orders.CountByStatus(gctx)
		summary.OrdersByStatus = counts
		return err
	})
	g.Go(func() error {
		revenue, err := s.deps.Orders.Revenue(gctx)
		summary.Revenue = revenue
		return err
	})
	g.Go(func() error {
		n, err := s.deps.Products.Count(gctx, false)
		summary.ProductCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.deps.Contacts.CountByStatus(gctx, models.MessageStatusNew)
		summary.UnreadMessages = n
		return err
	})
	if s.deps.DesignRequests != nil {
		g.Go(func() error {
			n, err := s.deps.DesignRequests.CountByStatus(gctx, models.DesignStatusPending)
			summary.PendingDesignRequests = n
			return err
		})
	}
	if s.deps.Counters != nil {
		g.Go(func() error {
			top, err := s.deps.Counters.TopViewed(gctx, topViewedLimit)
			if err != nil {
				// Counters are advisory; the rest of the dashboard still renders.
				logger.For(ctx, s.logger).Warn("Failed to load top viewed products", zap.Error(err))
				return nil
			}
			summary.TopViewed = top
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, internal(err)
	}
	if summary.OrdersByStatus == nil {
		summary.OrdersByStatus = map[models.OrderStatus]int64{}
	}
	return summary, nil
}
