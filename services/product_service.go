package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

const maxSlugAttempts = 20

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

// ProductCache caches public catalog listings.
type ProductCache interface {
	GetProductList(ctx context.Context, filter models.ProductFilter, out interface{}) bool
	SetProductListAsync(filter models.ProductFilter, value interface{})
	Invalidate(ctx context.Context) error
}

// ProductService defines the catalog business logic.
type ProductService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*ProductPage, *ServiceError)
	GetProduct(ctx context.Context, idOrSlug string, includeInactive bool) (*models.Product, *ServiceError)
	CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, *ServiceError)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *models.ProductInput) (*models.Product, *ServiceError)
	DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError
}

type productServiceImpl struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      ProductCache
	logger     *zap.Logger
}

// NewProductService creates a new ProductService. cache may be nil.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	cache ProductCache,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{
		products:   products,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// ListProducts only serves inactive products when the caller set
// IncludeInactive, which controllers allow for admins alone.
func (s *productServiceImpl) ListProducts(ctx context.Context, filter models.ProductFilter) (*ProductPage, *ServiceError) {
	filter.Page, filter.Limit = NormalizePage(filter.Page, filter.Limit)
	cacheable := s.cache != nil && !filter.IncludeInactive

	if cacheable {
		var cached ProductPage
		if s.cache.GetProductList(ctx, filter, &cached) {
			metrics.ProductCacheLookupsTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		metrics.ProductCacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	items, total, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, internal(err)
	}
	if items == nil {
		items = []models.Product{}
	}
	page := &ProductPage{Items: items, Total: total}

	if cacheable {
		s.cache.SetProductListAsync(filter, page)
	}
	return page, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, idOrSlug string, includeInactive bool) (*models.Product, *ServiceError) {
	var (
		product *models.Product
		err     error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		product, err = s.products.FindByID(ctx, id)
	} else {
		product, err = s.products.FindBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		return nil, lookupError(err, "Product not found")
	}
	if !product.IsActive && !includeInactive {
		return nil, notFound("Product not found")
	}
	return product, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, *ServiceError) {
	product := &models.Product{}
	if svcErr := s.apply(ctx, product, input, nil); svcErr != nil {
		return nil, svcErr
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, internal(err)
	}
	s.invalidate(ctx, product.ID)

	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("slug", product.Slug))
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, input *models.ProductInput) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Product not found")
	}
	if svcErr := s.apply(ctx, product, input, &id); svcErr != nil {
		return nil, svcErr
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, internal(err)
	}
	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.products.Delete(ctx, id); err != nil {
		return lookupError(err, "Product not found")
	}
	s.invalidate(ctx, id)
	return nil
}

// apply copies input onto product after checking the category and slug.
func (s *productServiceImpl) apply(ctx context.Context, product *models.Product, input *models.ProductInput, exclude *uuid.UUID) *ServiceError {
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return badRequest("Invalid category_id")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return lookupError(err, "Category not found")
	}

	slug, svcErr := s.resolveSlug(ctx, input, exclude)
	if svcErr != nil {
		return svcErr
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Slug = slug
	product.Description = input.Description
	product.Price = input.Price
	product.CompareAtPrice = input.CompareAtPrice
	product.CategoryID = categoryID
	product.Category = category
	product.Images = models.StringList(input.Images)
	product.ColorImages = models.ColorImages(input.ColorImages)
	product.IsCustomizable = input.IsCustomizable
	product.GiftType = input.GiftType
	product.Stock = input.Stock
	product.Sizes = models.StringList(input.Sizes)
	product.Colors = models.StringList(input.Colors)
	product.Tags = models.StringList(input.Tags)
	product.IsFeatured = input.IsFeatured
	product.IsActive = input.IsActive == nil || *input.IsActive
	return nil
}

// resolveSlug rejects an explicit slug already in use and makes a generated
// one unique by suffixing it.
func (s *productServiceImpl) resolveSlug(ctx context.Context, input *models.ProductInput, exclude *uuid.UUID) (string, *ServiceError) {
	if input.Slug != "" {
		exists, err := s.products.SlugExists(ctx, input.Slug, exclude)
		if err != nil {
			return "", internal(err)
		}
		if exists {
			return "", conflict("Product slug already exists")
		}
		return input.Slug, nil
	}

	base := Slugify(input.Name)
	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		exists, err := s.products.SlugExists(ctx, slug, exclude)
		if err != nil {
			return "", internal(err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *productServiceImpl) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("CRITICAL: Failed to invalidate product cache", zap.Error(err), zap.String("product_id", productID.String()))
	}
}
