package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

// CategoryService defines category management.
type CategoryService interface {
	ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, *ServiceError)
	CreateCategory(ctx context.Context, input *models.CategoryInput) (*models.Category, *ServiceError)
	UpdateCategory(ctx context.Context, id uuid.UUID, input *models.CategoryInput) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError
}

type categoryServiceImpl struct {
	repo   repository.CategoryRepository
	cache  ProductCache
	logger *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, cache ProductCache, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, cache: cache, logger: logger}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx, !includeInactive)
	if err != nil {
		return nil, internal(err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, input *models.CategoryInput) (*models.Category, *ServiceError) {
	category := &models.Category{}
	if svcErr := s.apply(ctx, category, input, nil); svcErr != nil {
		return nil, svcErr
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, internal(err)
	}
	return category, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, input *models.CategoryInput) (*models.Category, *ServiceError) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Category not found")
	}
	if svcErr := s.apply(ctx, category, input, &id); svcErr != nil {
		return nil, svcErr
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, internal(err)
	}
	s.invalidate(ctx)
	return category, nil
}

// DeleteCategory refuses while any product still references the category.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError {
	hasProducts, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return internal(err)
	}
	if hasProducts {
		return badRequest("Cannot delete category with existing products")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Category not found")
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryServiceImpl) apply(ctx context.Context, category *models.Category, input *models.CategoryInput, exclude *uuid.UUID) *ServiceError {
	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Name)
	}
	exists, err := s.repo.SlugExists(ctx, slug, exclude)
	if err != nil {
		return internal(err)
	}
	if exists {
		return conflict("Category slug already exists")
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Slug = slug
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.SortOrder = input.SortOrder
	category.IsActive = input.IsActive == nil || *input.IsActive
	return nil
}

func (s *categoryServiceImpl) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}
