package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// DesignRequestController serves one kind of design request; routes mount
// one instance for customizations and one for custom prints.
type DesignRequestController struct {
	service  services.DesignRequestService
	kind     models.DesignRequestKind
	validate *validator.Validate
}

func NewDesignRequestController(service services.DesignRequestService, kind models.DesignRequestKind, validate *validator.Validate) *DesignRequestController {
	return &DesignRequestController{service: service, kind: kind, validate: validate}
}

func (dc *DesignRequestController) Submit(ctx *gin.Context) {
	var req models.DesignRequestInput
	if appErr := validation.BindJSON(ctx, &req, dc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	created, svcErr := dc.service.Submit(ctx.Request.Context(), dc.kind, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"request": created})
}

func (dc *DesignRequestController) List(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	result, svcErr := dc.service.List(ctx.Request.Context(), dc.kind, ctx.Query("status"), page, limit)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	respondList(ctx, result.Items, result.Total, page, limit)
}

func (dc *DesignRequestController) UpdateStatus(ctx *gin.Context) {
	var req models.DesignStatusUpdate
	if appErr := validation.BindJSON(ctx, &req, dc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	updated, svcErr := dc.service.UpdateStatus(ctx.Request.Context(), dc.kind, ctx.Param("id"), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"request": updated})
}

type ContactController struct {
	service  services.ContactService
	validate *validator.Validate
}

func NewContactController(service services.ContactService, validate *validator.Validate) *ContactController {
	return &ContactController{service: service, validate: validate}
}

func (cc *ContactController) Submit(ctx *gin.Context) {
	var req models.ContactInput
	if appErr := validation.BindJSON(ctx, &req, cc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	msg, svcErr := cc.service.Submit(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": msg.ID})
}

func (cc *ContactController) List(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	result, svcErr := cc.service.List(ctx.Request.Context(), ctx.Query("status"), page, limit)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	respondList(ctx, result.Items, result.Total, page, limit)
}

func (cc *ContactController) Get(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	msg, svcErr := cc.service.Get(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"contact": msg})
}

func (cc *ContactController) Update(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.ContactUpdate
	if appErr := validation.BindJSON(ctx, &req, cc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	msg, svcErr := cc.service.Update(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"contact": msg})
}

type BulkOrderController struct {
	service  services.BulkOrderService
	validate *validator.Validate
}

func NewBulkOrderController(service services.BulkOrderService, validate *validator.Validate) *BulkOrderController {
	return &BulkOrderController{service: service, validate: validate}
}

func (bc *BulkOrderController) Submit(ctx *gin.Context) {
	var req models.BulkOrderInput
	if appErr := validation.BindJSON(ctx, &req, bc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	order, svcErr := bc.service.Submit(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"bulk_order": order})
}

func (bc *BulkOrderController) List(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	result, svcErr := bc.service.List(ctx.Request.Context(), ctx.Query("status"), page, limit)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	respondList(ctx, result.Items, result.Total, page, limit)
}

func (bc *BulkOrderController) UpdateStatus(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.BulkStatusUpdate
	if appErr := validation.BindJSON(ctx, &req, bc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	order, svcErr := bc.service.UpdateStatus(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bulk_order": order})
}

type AnnouncementController struct {
	service  services.AnnouncementService
	validate *validator.Validate
}

func NewAnnouncementController(service services.AnnouncementService, validate *validator.Validate) *AnnouncementController {
	return &AnnouncementController{service: service, validate: validate}
}

// Get handles GET /api/announcement.
func (ac *AnnouncementController) Get(ctx *gin.Context) {
	a, svcErr := ac.service.Get(ctx.Request.Context())
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"announcement": a})
}

// Update handles PUT /api/admin/announcement (admin only).
func (ac *AnnouncementController) Update(ctx *gin.Context) {
	var req models.AnnouncementInput
	if appErr := validation.BindJSON(ctx, &req, ac.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	a, svcErr := ac.service.Update(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"announcement": a})
}
