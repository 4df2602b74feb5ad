package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/auth"
	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/events"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// OrderPage is one page of orders.
type OrderPage struct {
	Items []models.Order `json:"items"`
	Total int64          `json:"total"`
}

// PlaceOrderParams carries the request-scoped context of a checkout.
type PlaceOrderParams struct {
	Actor          *auth.Actor
	CartOwner      models.CartOwner
	IdempotencyKey string
}

// OrderService defines order placement and lifecycle operations.
type OrderService interface {
	PlaceOrder(ctx context.Context, req *models.CreateOrderRequest, params PlaceOrderParams) (order *models.Order, replayed bool, svcErr *ServiceError)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderWithTimeline, *ServiceError)
	TrackOrder(ctx context.Context, id uuid.UUID, email string) (*models.OrderWithTimeline, *ServiceError)
	ListOrders(ctx context.Context, filter models.OrderFilter) (*OrderPage, *ServiceError)
	ListMyOrders(ctx context.Context, actor *auth.Actor, page, limit int) (*OrderPage, *ServiceError)
	UpdateOrder(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest, actor *auth.Actor) (*models.OrderWithTimeline, *ServiceError)
	ListEvents(ctx context.Context, id uuid.UUID) ([]models.OrderEvent, *ServiceError)
}

type orderServiceImpl struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	cart        repository.CartRepository
	idempotency repository.IdempotencyStore
	publisher   events.Publisher
	permissive  bool
	logger      *zap.Logger

	// claimWait bounds how long a retry waits for a concurrent request
	// holding the same idempotency key.
	claimWait time.Duration
	claimPoll time.Duration
}

// OrderServiceDeps groups the collaborators of the order service.
// Idempotency and Publisher may be nil.
type OrderServiceDeps struct {
	Orders      repository.OrderRepository
	Products    repository.ProductRepository
	Cart        repository.CartRepository
	Idempotency repository.IdempotencyStore
	Publisher   events.Publisher
	// PermissiveTransitions accepts any move between known statuses.
	PermissiveTransitions bool
}

func NewOrderService(deps OrderServiceDeps, logger *zap.Logger) OrderService {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderServiceImpl{
		orders:      deps.Orders,
		products:    deps.Products,
		cart:        deps.Cart,
		idempotency: deps.Idempotency,
		publisher:   publisher,
		permissive:  deps.PermissiveTransitions,
		logger:      logger,
		claimWait:   5 * time.Second,
		claimPoll:   50 * time.Millisecond,
	}
}

// PlaceOrder creates a pending cash-on-delivery order from the checkout
// payload. A repeated idempotency key returns the order created first.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, req *models.CreateOrderRequest, params PlaceOrderParams) (*models.Order, bool, *ServiceError) {
	log := logger.For(ctx, s.logger)

	if len(req.Items) == 0 {
		return nil, false, badRequest("At least one item is required")
	}
	if req.TotalAmount <= 0 {
		return nil, false, badRequest("Total amount must be greater than zero")
	}
	if models.PaymentMethod(req.PaymentMethod) != models.PaymentMethodCOD {
		return nil, false, badRequest("Only cash on delivery is supported")
	}
	if validation.ToPaise(validation.ItemsTotal(req.Items)) != validation.ToPaise(req.TotalAmount) {
		return nil, false, badRequest("Total amount does not match items")
	}

	existing, claimed, svcErr := s.claimKey(ctx, params.IdempotencyKey)
	if svcErr != nil {
		return nil, false, svcErr
	}
	if existing != nil {
		log.Info("Returning order for repeated idempotency key", zap.String("order_id", existing.ID.String()))
		return existing, true, nil
	}
	created := false
	if claimed {
		defer func() {
			if !created {
				s.releaseKey(ctx, params.IdempotencyKey)
			}
		}()
	}

	items, svcErr := s.snapshotItems(ctx, req.Items)
	if svcErr != nil {
		return nil, false, svcErr
	}

	order := &models.Order{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		ShippingAddress: shippingAddress(req.ShippingAddress),
		Items:           items,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   models.PaymentMethodCOD,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
		Notes:           req.Notes,
	}
	if params.Actor != nil {
		userID := params.Actor.UserID
		order.UserID = &userID
	}
	event := &models.OrderEvent{
		Status:    models.OrderStatusPending,
		Notes:     "Order placed",
		CreatedBy: order.Email,
	}

	if err := s.orders.Create(ctx, order, event); err != nil {
		log.Error("Failed to create order", zap.Error(err))
		return nil, false, internal(err)
	}

	created = true

	if claimed {
		if err := s.idempotency.Complete(context.WithoutCancel(ctx), params.IdempotencyKey, order.ID.String()); err != nil {
			log.Warn("Failed to store idempotency key", zap.Error(err), zap.String("order_id", order.ID.String()))
		}
	}

	if !params.CartOwner.IsZero() && s.cart != nil {
		if err := s.cart.ClearOwner(ctx, params.CartOwner); err != nil {
			log.Warn("Failed to clear cart after order", zap.Error(err), zap.String("order_id", order.ID.String()))
		}
	}

	metrics.OrdersPlacedTotal.Inc()
	s.publisher.PublishOrderEvent(ctx, events.NewOrderEvent(events.TypeOrderPlaced, order))

	log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(order.Items)),
	)
	return order, false, nil
}

// claimKey reserves key for this request. When another request holds it,
// claimKey waits for that request's order and returns it; a holder that is
// still working after claimWait yields a 409. Store errors disable
// replay protection for the request instead of failing the checkout.
func (s *orderServiceImpl) claimKey(ctx context.Context, key string) (*models.Order, bool, *ServiceError) {
	if s.idempotency == nil || key == "" {
		return nil, false, nil
	}
	log := logger.For(ctx, s.logger)
	deadline := time.Now().Add(s.claimWait)

	for {
		reserved, current, err := s.idempotency.Reserve(ctx, key)
		if err != nil {
			log.Warn("Idempotency store unavailable", zap.Error(err))
			return nil, false, nil
		}
		if reserved {
			return nil, true, nil
		}
		if current != "" && current != repository.IdempotencyPending {
			id, err := uuid.Parse(current)
			if err != nil {
				return nil, false, internal(fmt.Errorf("corrupt idempotency entry %q", current))
			}
			order, err := s.orders.FindByID(ctx, id)
			if err != nil {
				return nil, false, lookupError(err, "Order not found")
			}
			return order, false, nil
		}

		if time.Now().After(deadline) {
			return nil, false, conflict("An order with this idempotency key is still being processed")
		}
		select {
		case <-ctx.Done():
			return nil, false, internal(ctx.Err())
		case <-time.After(s.claimPoll):
		}
	}
}

func (s *orderServiceImpl) releaseKey(ctx context.Context, key string) {
	if err := s.idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
		logger.For(ctx, s.logger).Warn("Failed to release idempotency key", zap.Error(err))
	}
}

// snapshotItems checks every line against the live catalog and copies the
// product data onto the order.
func (s *orderServiceImpl) snapshotItems(ctx context.Context, inputs []models.OrderItemInput) (models.OrderItems, *ServiceError) {
	ids := make([]uuid.UUID, 0, len(inputs))
	parsed := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		id, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, badRequest(fmt.Sprintf("Invalid product_id for item %d", i))
		}
		parsed[i] = id
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal(err)
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make(models.OrderItems, 0, len(inputs))
	for i, in := range inputs {
		product, ok := byID[parsed[i]]
		if !ok || !product.IsActive {
			return nil, badRequest(fmt.Sprintf("Product %s is not available", in.ProductID))
		}
		if validation.ToPaise(product.Price) != validation.ToPaise(in.Price) {
			return nil, badRequest(fmt.Sprintf("Price of %s has changed", product.Name))
		}
		image := in.Image
		if image == "" && len(product.Images) > 0 {
			image = product.Images[0]
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  in.Quantity,
			Size:      in.Size,
			Color:     in.Color,
			Image:     image,
		})
	}
	return items, nil
}

func shippingAddress(in models.AddressInput) models.ShippingAddress {
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "India"
	}
	return models.ShippingAddress{
		Line1:   strings.TrimSpace(in.Line1),
		Line2:   strings.TrimSpace(in.Line2),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Pincode: strings.TrimSpace(in.Pincode),
		Country: country,
	}
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderWithTimeline, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order not found")
	}
	return s.withTimeline(ctx, order)
}

// TrackOrder reports a mismatched email as not found so order ids cannot be
// enumerated.
func (s *orderServiceImpl) TrackOrder(ctx context.Context, id uuid.UUID, email string) (*models.OrderWithTimeline, *ServiceError) {
	if strings.TrimSpace(email) == "" {
		return nil, badRequest("Email is required")
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order not found")
	}
	if !strings.EqualFold(order.Email, strings.TrimSpace(email)) {
		return nil, notFound("Order not found")
	}
	return s.withTimeline(ctx, order)
}

func (s *orderServiceImpl) withTimeline(ctx context.Context, order *models.Order) (*models.OrderWithTimeline, *ServiceError) {
	timeline, err := s.orders.ListEvents(ctx, order.ID)
	if err != nil {
		return nil, internal(err)
	}
	return &models.OrderWithTimeline{Order: order, Timeline: timeline}, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, filter models.OrderFilter) (*OrderPage, *ServiceError) {
	filter.Page, filter.Limit = NormalizePage(filter.Page, filter.Limit)
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, badRequest("Invalid status filter")
	}
	orders, total, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, internal(err)
	}
	return &OrderPage{Items: orders, Total: total}, nil
}

func (s *orderServiceImpl) ListMyOrders(ctx context.Context, actor *auth.Actor, page, limit int) (*OrderPage, *ServiceError) {
	if actor == nil {
		return nil, unauthorized()
	}
	page, limit = NormalizePage(page, limit)
	orders, total, err := s.orders.FindByUserID(ctx, actor.UserID, page, limit)
	if err != nil {
		return nil, internal(err)
	}
	return &OrderPage{Items: orders, Total: total}, nil
}

// UpdateOrder edits contact, address, notes and payment status. Status is
// left to UpdateStatus.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order not found")
	}

	if req.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.Email != nil {
		order.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		order.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = shippingAddress(*req.ShippingAddress)
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = models.PaymentStatus(*req.PaymentStatus)
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, internal(err)
	}
	return order, nil
}

// UpdateStatus applies a lifecycle transition and appends it to the
// timeline in the same transaction.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest, actor *auth.Actor) (*models.OrderWithTimeline, *ServiceError) {
	log := logger.For(ctx, s.logger)

	next, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return nil, badRequest("Invalid status")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Order not found")
	}

	previous := order.Status
	if !s.permissive && !previous.CanTransitionTo(next) {
		metrics.OrderTransitionsRejectedTotal.Inc()
		log.Info("Rejected order status transition",
			zap.String("order_id", id.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(next)),
		)
		return nil, badRequest(fmt.Sprintf("Cannot change status from %s to %s", previous, next))
	}

	event := &models.OrderEvent{
		Status: next,
		Notes:  req.Notes,
	}
	if actor != nil {
		event.CreatedBy = actor.Email
	}

	if err := s.orders.UpdateStatus(ctx, id, next, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Order not found")
		}
		log.Error("Failed to update order status", zap.Error(err), zap.String("order_id", id.String()))
		return nil, internal(err)
	}
	order.Status = next

	metrics.OrderStatusChangesTotal.WithLabelValues(string(previous), string(next)).Inc()
	s.publisher.PublishOrderEvent(ctx, events.NewOrderEvent(events.TypeOrderStatusChanged, order))

	return s.withTimeline(ctx, order)
}

func (s *orderServiceImpl) ListEvents(ctx context.Context, id uuid.UUID) ([]models.OrderEvent, *ServiceError) {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "Order not found")
	}
	evts, err := s.orders.ListEvents(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	return evts, nil
}
