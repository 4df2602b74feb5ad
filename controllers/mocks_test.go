package controllers

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yashrajoria/streetwear-backend/auth"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
)

type MockProductService struct{ mock.Mock }

func (m *MockProductService) ListProducts(ctx context.Context, filter models.ProductFilter) (*services.ProductPage, *services.ServiceError) {
	args := m.Called(ctx, filter)
	return ptrOrNil[services.ProductPage](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockProductService) GetProduct(ctx context.Context, idOrSlug string, includeInactive bool) (*models.Product, *services.ServiceError) {
	args := m.Called(ctx, idOrSlug, includeInactive)
	return ptrOrNil[models.Product](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockProductService) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, *services.ServiceError) {
	args := m.Called(ctx, input)
	return ptrOrNil[models.Product](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *models.ProductInput) (*models.Product, *services.ServiceError) {
	args := m.Called(ctx, id, input)
	return ptrOrNil[models.Product](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockProductService) DeleteProduct(ctx context.Context, id uuid.UUID) *services.ServiceError {
	return svcErr(m.Called(ctx, id).Get(0))
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, *services.ServiceError) {
	args := m.Called(ctx, owner)
	return ptrOrNil[models.Cart](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockCartService) AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.Cart, *services.ServiceError) {
	args := m.Called(ctx, owner, req)
	return ptrOrNil[models.Cart](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockCartService) UpdateItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID, quantity int) (*models.Cart, bool, *services.ServiceError) {
	args := m.Called(ctx, owner, itemID, quantity)
	return ptrOrNil[models.Cart](args.Get(0)), args.Bool(1), svcErr(args.Get(2))
}
func (m *MockCartService) RemoveItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID) (*models.Cart, *services.ServiceError) {
	args := m.Called(ctx, owner, itemID)
	return ptrOrNil[models.Cart](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockCartService) ClearCart(ctx context.Context, owner models.CartOwner) *services.ServiceError {
	return svcErr(m.Called(ctx, owner).Get(0))
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) PlaceOrder(ctx context.Context, req *models.CreateOrderRequest, params services.PlaceOrderParams) (*models.Order, bool, *services.ServiceError) {
	args := m.Called(ctx, req, params)
	return ptrOrNil[models.Order](args.Get(0)), args.Bool(1), svcErr(args.Get(2))
}
func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderWithTimeline, *services.ServiceError) {
	args := m.Called(ctx, id)
	return ptrOrNil[models.OrderWithTimeline](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockOrderService) TrackOrder(ctx context.Context, id uuid.UUID, email string) (*models.OrderWithTimeline, *services.ServiceError) {
	args := m.Called(ctx, id, email)
	return ptrOrNil[models.OrderWithTimeline](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockOrderService) ListOrders(ctx context.Context, filter models.OrderFilter) (*services.OrderPage, *services.ServiceError) {
	args := m.Called(ctx, filter)
	return ptrOrNil[services.OrderPage](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockOrderService) ListMyOrders(ctx context.Context, actor *auth.Actor, page, limit int) (*services.OrderPage, *services.ServiceError) {
	args := m.Called(ctx, actor, page, limit)
	return ptrOrNil[services.OrderPage](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *services.ServiceError) {
	args := m.Called(ctx, id, req)
	return ptrOrNil[models.Order](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest, actor *auth.Actor) (*models.OrderWithTimeline, *services.ServiceError) {
	args := m.Called(ctx, id, req, actor)
	return ptrOrNil[models.OrderWithTimeline](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockOrderService) ListEvents(ctx context.Context, id uuid.UUID) ([]models.OrderEvent, *services.ServiceError) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, svcErr(args.Get(1))
	}
	return args.Get(0).([]models.OrderEvent), svcErr(args.Get(1))
}

type MockAdminAuthService struct{ mock.Mock }

func (m *MockAdminAuthService) Login(ctx context.Context, req *models.LoginRequest) (*services.LoginResult, *services.ServiceError) {
	args := m.Called(ctx, req)
	return ptrOrNil[services.LoginResult](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockAdminAuthService) Logout(ctx context.Context, token string) *services.ServiceError {
	return svcErr(m.Called(ctx, token).Get(0))
}
func (m *MockAdminAuthService) Session(ctx context.Context, actor *auth.Actor) (*models.User, *services.ServiceError) {
	args := m.Called(ctx, actor)
	return ptrOrNil[models.User](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockAdminAuthService) CreateAdmin(ctx context.Context, email, name, password string) (*models.User, *services.ServiceError) {
	args := m.Called(ctx, email, name, password)
	return ptrOrNil[models.User](args.Get(0)), svcErr(args.Get(1))
}

type MockUploadService struct{ mock.Mock }

func (m *MockUploadService) UploadFile(ctx context.Context, body io.Reader) (*models.UploadResult, *services.ServiceError) {
	args := m.Called(ctx, body)
	return ptrOrNil[models.UploadResult](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockUploadService) UploadBase64(ctx context.Context, req *models.Base64UploadRequest) (*models.UploadResult, *services.ServiceError) {
	args := m.Called(ctx, req)
	return ptrOrNil[models.UploadResult](args.Get(0)), svcErr(args.Get(1))
}
func (m *MockUploadService) Presign(ctx context.Context, req *models.PresignRequest) (*models.UploadResult, *services.ServiceError) {
	args := m.Called(ctx, req)
	return ptrOrNil[models.UploadResult](args.Get(0)), svcErr(args.Get(1))
}

func ptrOrNil[T any](v interface{}) *T {
	if v == nil {
		return nil
	}
	return v.(*T)
}

func svcErr(v interface{}) *services.ServiceError {
	if v == nil {
		return nil
	}
	return v.(*services.ServiceError)
}
