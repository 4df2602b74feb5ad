package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// MaxLineQuantity caps a single cart line.
const MaxLineQuantity = 99

// CartService defines cart operations for users and guest sessions.
type CartService interface {
	GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, *ServiceError)
	AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.Cart, *ServiceError)
	UpdateItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID, quantity int) (cart *models.Cart, removed bool, svcErr *ServiceError)
	RemoveItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID) (*models.Cart, *ServiceError)
	ClearCart(ctx context.Context, owner models.CartOwner) *ServiceError
}

type cartServiceImpl struct {
	cart     repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{cart: cart, products: products, logger: logger}
}

func ownerLabel(owner models.CartOwner) string {
	if owner.UserID != nil {
		return "user"
	}
	return "guest"
}

// GetCart prices every line at the product's current price. Lines whose
// product has gone are left out.
func (s *cartServiceImpl) GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, *ServiceError) {
	if owner.IsZero() {
		return nil, badRequest("Cart session is required")
	}
	items, err := s.cart.FindByOwner(ctx, owner)
	if err != nil {
		return nil, internal(err)
	}

	cart := &models.Cart{Items: []models.CartLine{}}
	var totalPaise int64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		line := models.CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Slug:      item.Product.Slug,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		}
		if len(item.Product.Images) > 0 {
			line.Image = item.Product.Images[0]
		}
		linePaise := validation.ToPaise(item.Product.Price) * int64(item.Quantity)
		line.LineTotal = float64(linePaise) / 100
		totalPaise += linePaise

		cart.Items = append(cart.Items, line)
		cart.Count += item.Quantity
	}
	cart.Total = float64(totalPaise) / 100
	return cart, nil
}

// AddItem merges into an existing line with the same product, size and color.
func (s *cartServiceImpl) AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.Cart, *ServiceError) {
	if owner.IsZero() {
		return nil, badRequest("Cart session is required")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, badRequest("Invalid product_id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, lookupError(err, "Product not found")
	}
	if !product.IsActive {
		return nil, notFound("Product not found")
	}
	if req.Size != "" && len(product.Sizes) > 0 && !contains(product.Sizes, req.Size) {
		return nil, badRequest("Size is not available for this product")
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	existing, err := s.cart.FindLine(ctx, owner, productID, req.Size, req.Color)
	switch {
	case err == nil:
		next := existing.Quantity + quantity
		if next > MaxLineQuantity {
			next = MaxLineQuantity
		}
		if err := s.cart.UpdateQuantity(ctx, existing.ID, next); err != nil {
			return nil, internal(err)
		}
	case errors.Is(err, repository.ErrNotFound):
		item := &models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Size:      req.Size,
			Color:     req.Color,
		}
		if owner.UserID != nil {
			item.UserID = owner.UserID
		} else {
			sessionID := owner.SessionID
			item.SessionID = &sessionID
		}
		if err := s.cart.Create(ctx, item); err != nil {
			return nil, internal(err)
		}
	default:
		return nil, internal(err)
	}

	metrics.CartMutationsTotal.WithLabelValues("add", ownerLabel(owner)).Inc()
	return s.GetCart(ctx, owner)
}

// UpdateItem sets the line quantity; zero or less removes the line.
func (s *cartServiceImpl) UpdateItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID, quantity int) (*models.Cart, bool, *ServiceError) {
	if owner.IsZero() {
		return nil, false, badRequest("Cart session is required")
	}
	item, err := s.cart.FindByIDForOwner(ctx, itemID, owner)
	if err != nil {
		return nil, false, lookupError(err, "Cart item not found")
	}

	if quantity <= 0 {
		if err := s.cart.Delete(ctx, item.ID); err != nil {
			return nil, false, internal(err)
		}
		metrics.CartMutationsTotal.WithLabelValues("remove", ownerLabel(owner)).Inc()
		cart, svcErr := s.GetCart(ctx, owner)
		return cart, true, svcErr
	}

	if quantity > MaxLineQuantity {
		quantity = MaxLineQuantity
	}
	if err := s.cart.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, false, internal(err)
	}
	metrics.CartMutationsTotal.WithLabelValues("update", ownerLabel(owner)).Inc()
	cart, svcErr := s.GetCart(ctx, owner)
	return cart, false, svcErr
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID) (*models.Cart, *ServiceError) {
	if owner.IsZero() {
		return nil, badRequest("Cart session is required")
	}
	item, err := s.cart.FindByIDForOwner(ctx, itemID, owner)
	if err != nil {
		return nil, lookupError(err, "Cart item not found")
	}
	if err := s.cart.Delete(ctx, item.ID); err != nil {
		return nil, internal(err)
	}
	metrics.CartMutationsTotal.WithLabelValues("remove", ownerLabel(owner)).Inc()
	return s.GetCart(ctx, owner)
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, owner models.CartOwner) *ServiceError {
	if owner.IsZero() {
		return badRequest("Cart session is required")
	}
	if err := s.cart.ClearOwner(ctx, owner); err != nil {
		return internal(err)
	}
	metrics.CartMutationsTotal.WithLabelValues("clear", ownerLabel(owner)).Inc()
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
