package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
)

func TestAnalyticsService_Track(t *testing.T) {
	ctx := context.Background()
	counters := new(MockAnalyticsRepository)
	svc := NewAnalyticsService(AnalyticsDeps{Counters: counters}, zap.NewNop())
	productID := uuid.NewString()

	counters.On("Increment", ctx, productID, models.EventProductView).Return(nil).Once()
	assert.Nil(t, svc.Track(ctx, &models.AnalyticsEventInput{Type: models.EventProductView, ProductID: productID}))

	svcErr := svc.Track(ctx, &models.AnalyticsEventInput{Type: "checkout", ProductID: productID})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	counters.AssertExpectations(t)
}

func TestAnalyticsService_TrackWithoutCounters(t *testing.T) {
	svc := NewAnalyticsService(AnalyticsDeps{}, zap.NewNop())
	assert.Nil(t, svc.Track(context.Background(), &models.AnalyticsEventInput{Type: models.EventAddToCart, ProductID: uuid.NewString()}))
}

func dashboardDeps() (AnalyticsDeps, *MockOrderRepository, *MockAnalyticsRepository) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	contacts := new(MockContactRepository)
	designs := new(MockDesignRequestRepository)
	counters := new(MockAnalyticsRepository)

	orders.On("CountByStatus", mock.Anything).Return(map[models.OrderStatus]int64{models.OrderStatusPending: 3}, nil)
	products.On("Count", mock.Anything, false).Return(int64(42), nil)
	contacts.On("CountByStatus", mock.Anything, models.MessageStatusNew).Return(int64(5), nil)
	designs.On("CountByStatus", mock.Anything, models.DesignStatusPending).Return(int64(2), nil)

	return AnalyticsDeps{
		Counters:       counters,
		Orders:         orders,
		Products:       products,
		Contacts:       contacts,
		DesignRequests: designs,
	}, orders, counters
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	deps, orders, counters := dashboardDeps()
	orders.On("Revenue", mock.Anything).Return(12345.5, nil)
	counters.On("TopViewed", mock.Anything, topViewedLimit).Return([]models.ProductStats{{ProductID: "p1", Views: 9}}, nil)

	summary, svcErr := NewAnalyticsService(deps, zap.NewNop()).Dashboard(context.Background())
	require.Nil(t, svcErr)
	assert.Equal(t, int64(3), summary.OrdersByStatus[models.OrderStatusPending])
	assert.Equal(t, 12345.5, summary.Revenue)
	assert.Equal(t, int64(42), summary.ProductCount)
	assert.Equal(t, int64(5), summary.UnreadMessages)
	assert.Equal(t, int64(2), summary.PendingDesignRequests)
	assert.Len(t, summary.TopViewed, 1)
}

func TestAnalyticsService_DashboardToleratesCounterFailure(t *testing.T) {
	deps, orders, counters := dashboardDeps()
	orders.On("Revenue", mock.Anything).Return(0.0, nil)
	counters.On("TopViewed", mock.Anything, topViewedLimit).Return(nil, errors.New("throttled"))

	summary, svcErr := NewAnalyticsService(deps, zap.NewNop()).Dashboard(context.Background())
	require.Nil(t, svcErr)
	assert.Empty(t, summary.TopViewed)
}

func TestAnalyticsService_DashboardFailsOnStoreError(t *testing.T) {
	deps, orders, counters := dashboardDeps()
	orders.On("Revenue", mock.Anything).Return(0.0, errors.New("pq: canceling statement"))
	counters.On("TopViewed", mock.Anything, topViewedLimit).Return([]models.ProductStats{}, nil)

	_, svcErr := NewAnalyticsService(deps, zap.NewNop()).Dashboard(context.Background())
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}
