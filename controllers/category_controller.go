package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/middleware"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

type CategoryController struct {
	categoryService services.CategoryService
	validate        *validator.Validate
}

func NewCategoryController(categoryService services.CategoryService, validate *validator.Validate) *CategoryController {
	return &CategoryController{categoryService: categoryService, validate: validate}
}

// ListCategories handles GET /api/categories.
func (cc *CategoryController) ListCategories(ctx *gin.Context) {
	includeInactive := ctx.Query("all") == "true" && middleware.GetActor(ctx).IsAdmin()
	categories, svcErr := cc.categoryService.ListCategories(ctx.Request.Context(), includeInactive)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	var req models.CategoryInput
	if appErr := validation.BindJSON(ctx, &req, cc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	category, svcErr := cc.categoryService.CreateCategory(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"category": category})
}

func (cc *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.CategoryInput
	if appErr := validation.BindJSON(ctx, &req, cc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	category, svcErr := cc.categoryService.UpdateCategory(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"category": category})
}

func (cc *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if svcErr := cc.categoryService.DeleteCategory(ctx.Request.Context(), id); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
