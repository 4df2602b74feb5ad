package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yashrajoria/streetwear-backend/auth"
	"github.com/yashrajoria/streetwear-backend/events"
	"github.com/yashrajoria/streetwear-backend/models"
)

// --- Repository mocks ---

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) FindAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}
func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}
func (m *MockProductRepository) SlugExists(ctx context.Context, slug string, exclude *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}
func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}
func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}
func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockProductRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}
func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug string, exclude *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}
func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCategoryRepository) HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) FindByOwner(ctx context.Context, owner models.CartOwner) ([]models.CartItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}
func (m *MockCartRepository) FindLine(ctx context.Context, owner models.CartOwner, productID uuid.UUID, size, color string) (*models.CartItem, error) {
	args := m.Called(ctx, owner, productID, size, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}
func (m *MockCartRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, owner models.CartOwner) (*models.CartItem, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}
func (m *MockCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockCartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}
func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCartRepository) ClearOwner(ctx context.Context, owner models.CartOwner) error {
	return m.Called(ctx, owner).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order, event *models.OrderEvent) error {
	return m.Called(ctx, order, event).Error(0)
}
func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}
func (m *MockOrderRepository) FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}
func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, event *models.OrderEvent) error {
	return m.Called(ctx, orderID, status, event).Error(0)
}
func (m *MockOrderRepository) ListEvents(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderEvent), args.Error(1)
}
func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.OrderStatus]int64), args.Error(1)
}
func (m *MockOrderRepository) Revenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type MockContactRepository struct{ mock.Mock }

func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockContactRepository) FindAll(ctx context.Context, status models.MessageStatus, page, limit int) ([]models.ContactMessage, int64, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ContactMessage), args.Get(1).(int64), args.Error(2)
}
func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}
func (m *MockContactRepository) Update(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockContactRepository) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockDesignRequestRepository struct{ mock.Mock }

func (m *MockDesignRequestRepository) Create(ctx context.Context, req *models.DesignRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *MockDesignRequestRepository) FindAll(ctx context.Context, kind models.DesignRequestKind, status models.DesignStatus, page, limit int) ([]models.DesignRequest, int64, error) {
	args := m.Called(ctx, kind, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.DesignRequest), args.Get(1).(int64), args.Error(2)
}
func (m *MockDesignRequestRepository) FindByID(ctx context.Context, id string) (*models.DesignRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DesignRequest), args.Error(1)
}
func (m *MockDesignRequestRepository) UpdateStatus(ctx context.Context, id string, status models.DesignStatus, adminNotes string) (*models.DesignRequest, error) {
	args := m.Called(ctx, id, status, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DesignRequest), args.Error(1)
}
func (m *MockDesignRequestRepository) CountByStatus(ctx context.Context, status models.DesignStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDesignRequestRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockAnalyticsRepository struct{ mock.Mock }

func (m *MockAnalyticsRepository) Increment(ctx context.Context, productID, eventType string) error {
	return m.Called(ctx, productID, eventType).Error(0)
}
func (m *MockAnalyticsRepository) TopViewed(ctx context.Context, limit int) ([]models.ProductStats, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductStats), args.Error(1)
}

// --- Infrastructure mocks ---

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string) (bool, string, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.String(1), args.Error(2)
}
func (m *MockIdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	return m.Called(ctx, key, orderID).Error(0)
}
func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockProductCache struct{ mock.Mock }

func (m *MockProductCache) GetProductList(ctx context.Context, filter models.ProductFilter, out interface{}) bool {
	return m.Called(ctx, filter, out).Bool(0)
}
func (m *MockProductCache) SetProductListAsync(filter models.ProductFilter, value interface{}) {
	m.Called(filter, value)
}
func (m *MockProductCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockSessionManager struct{ mock.Mock }

func (m *MockSessionManager) Issue(ctx context.Context, user *models.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockSessionManager) Resolve(ctx context.Context, token string) (*auth.Actor, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Actor), args.Error(1)
}
func (m *MockSessionManager) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockObjectStore struct{ mock.Mock }

func (m *MockObjectStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockObjectStore) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, map[string]string, error) {
	args := m.Called(ctx, key, contentType, expires)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(map[string]string), args.Error(2)
}
func (m *MockObjectStore) PublicURL(key string) string {
	return m.Called(key).String(0)
}

// recordingPublisher captures fanned-out events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, evt events.OrderEvent) {
	p.mu.Lock()
	p.events = append(p.events, evt)
	p.mu.Unlock()
}

type MockBulkOrderRepository struct{ mock.Mock }

func (m *MockBulkOrderRepository) Create(ctx context.Context, order *models.BulkOrder) error {
	return m.Called(ctx, order).Error(0)
}
func (m *MockBulkOrderRepository) FindAll(ctx context.Context, status models.BulkOrderStatus, page, limit int) ([]models.BulkOrder, int64, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.BulkOrder), args.Get(1).(int64), args.Error(2)
}
func (m *MockBulkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BulkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkOrder), args.Error(1)
}
func (m *MockBulkOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BulkOrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockAnnouncementRepository struct{ mock.Mock }

func (m *MockAnnouncementRepository) Get(ctx context.Context) (*models.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}
func (m *MockAnnouncementRepository) Save(ctx context.Context, a *models.Announcement) error {
	return m.Called(ctx, a).Error(0)
}
