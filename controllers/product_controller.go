package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/middleware"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// ProductController handles HTTP requests for the catalog.
type ProductController struct {
	productService services.ProductService
	validate       *validator.Validate
}

func NewProductController(productService services.ProductService, validate *validator.Validate) *ProductController {
	return &ProductController{productService: productService, validate: validate}
}

// ListProducts handles GET /api/products. all=true is honoured for admins only.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	filter := models.ProductFilter{
		CategorySlug:    strings.ToLower(ctx.Query("category")),
		Featured:        queryBool(ctx, "featured"),
		Customizable:    queryBool(ctx, "customizable"),
		GiftType:        ctx.Query("gift_type"),
		Search:          strings.TrimSpace(ctx.Query("search")),
		MinPrice:        queryFloat(ctx, "min_price"),
		MaxPrice:        queryFloat(ctx, "max_price"),
		Sort:            ctx.Query("sort"),
		IncludeInactive: ctx.Query("all") == "true" && middleware.GetActor(ctx).IsAdmin(),
		Page:            page,
		Limit:           limit,
	}
	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		filter.CategoryID = &id
	}

	result, svcErr := pc.productService.ListProducts(ctx.Request.Context(), filter)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	respondList(ctx, result.Items, result.Total, page, limit)
}

// GetProduct handles GET /api/products/:id, where id may also be a slug.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	product, svcErr := pc.productService.GetProduct(ctx.Request.Context(), ctx.Param("id"), middleware.GetActor(ctx).IsAdmin())
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct handles POST /api/products (admin only).
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.ProductInput
	if appErr := validation.BindJSON(ctx, &req, pc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}

	product, svcErr := pc.productService.CreateProduct(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /api/products/:id (admin only).
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.ProductInput
	if appErr := validation.BindJSON(ctx, &req, pc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}

	product, svcErr := pc.productService.UpdateProduct(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id (admin only).
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if svcErr := pc.productService.DeleteProduct(ctx.Request.Context(), id); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
