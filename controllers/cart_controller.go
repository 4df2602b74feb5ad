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

// CartController serves user and guest carts. The owner is resolved from the
// actor, the X-Session-ID header or the cart cookie.
type CartController struct {
	cartService services.CartService
	validate    *validator.Validate
	cookieName  string
}

func NewCartController(cartService services.CartService, validate *validator.Validate, cookieName string) *CartController {
	return &CartController{cartService: cartService, validate: validate, cookieName: cookieName}
}

// GetCart handles GET /api/cart.
func (cc *CartController) GetCart(ctx *gin.Context) {
	cart, svcErr := cc.cartService.GetCart(ctx.Request.Context(), middleware.CartOwner(ctx, cc.cookieName))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items.
func (cc *CartController) AddItem(ctx *gin.Context) {
	var req models.AddCartItemRequest
	if appErr := validation.BindJSON(ctx, &req, cc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	cart, svcErr := cc.cartService.AddItem(ctx.Request.Context(), middleware.CartOwner(ctx, cc.cookieName), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// UpdateItem handles PUT /api/cart/items/:id. A quantity of zero or less
// removes the line.
func (cc *CartController) UpdateItem(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if appErr := validation.BindJSON(ctx, &req, cc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}

	cart, removed, svcErr := cc.cartService.UpdateItem(ctx.Request.Context(), middleware.CartOwner(ctx, cc.cookieName), id, *req.Quantity)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	if removed {
		ctx.JSON(http.StatusOK, gin.H{"removed": true, "cart": cart})
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/:id.
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	cart, svcErr := cc.cartService.RemoveItem(ctx.Request.Context(), middleware.CartOwner(ctx, cc.cookieName), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// ClearCart handles DELETE /api/cart.
func (cc *CartController) ClearCart(ctx *gin.Context) {
	if svcErr := cc.cartService.ClearCart(ctx.Request.Context(), middleware.CartOwner(ctx, cc.cookieName)); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
