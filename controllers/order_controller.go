package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/middleware"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// IdempotencyKeyHeader lets checkout retries return the original order.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

type OrderController struct {
	orderService services.OrderService
	validate     *validator.Validate
	cookieName   string
}

func NewOrderController(orderService services.OrderService, validate *validator.Validate, cartCookieName string) *OrderController {
	return &OrderController{orderService: orderService, validate: validate, cookieName: cartCookieName}
}

// PlaceOrder handles POST /api/orders. Guests may check out; a signed-in
// actor is attached to the order.
func (oc *OrderController) PlaceOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if appErr := validation.BindJSON(ctx, &req, oc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}

	key := strings.TrimSpace(ctx.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key is too long"})
		return
	}

	order, replayed, svcErr := oc.orderService.PlaceOrder(ctx.Request.Context(), &req, services.PlaceOrderParams{
		Actor:          middleware.GetActor(ctx),
		CartOwner:      middleware.CartOwner(ctx, oc.cookieName),
		IdempotencyKey: key,
	})
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	ctx.JSON(status, gin.H{"order": order})
}

// TrackOrder handles GET /api/orders/:id/track?email=.
func (oc *OrderController) TrackOrder(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	result, svcErr := oc.orderService.TrackOrder(ctx.Request.Context(), id, ctx.Query("email"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListMyOrders handles GET /api/orders/mine.
func (oc *OrderController) ListMyOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	result, svcErr := oc.orderService.ListMyOrders(ctx.Request.Context(), middleware.GetActor(ctx), page, limit)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	respondList(ctx, result.Items, result.Total, page, limit)
}

// ListOrders handles GET /api/orders (admin only).
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	filter := models.OrderFilter{
		Status: models.OrderStatus(ctx.Query("status")),
		Email:  strings.TrimSpace(ctx.Query("email")),
		Page:   page,
		Limit:  limit,
	}
	result, svcErr := oc.orderService.ListOrders(ctx.Request.Context(), filter)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	respondList(ctx, result.Items, result.Total, page, limit)
}

// GetOrder handles GET /api/orders/:id (admin only).
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	result, svcErr := oc.orderService.GetOrder(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// UpdateOrder handles PUT /api/orders/:id (admin only).
func (oc *OrderController) UpdateOrder(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderRequest
	if appErr := validation.BindJSON(ctx, &req, oc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	order, svcErr := oc.orderService.UpdateOrder(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status (admin only).
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if appErr := validation.BindJSON(ctx, &req, oc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	result, svcErr := oc.orderService.UpdateStatus(ctx.Request.Context(), id, &req, middleware.GetActor(ctx))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListOrderEvents handles GET /api/orders/:id/events (admin only).
func (oc *OrderController) ListOrderEvents(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	evts, svcErr := oc.orderService.ListEvents(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"events": evts})
}
