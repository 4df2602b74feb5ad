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

type AnalyticsController struct {
	analyticsService services.AnalyticsService
	validate         *validator.Validate
}

func NewAnalyticsController(analyticsService services.AnalyticsService, validate *validator.Validate) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService, validate: validate}
}

// Track handles POST /api/analytics/events.
func (ac *AnalyticsController) Track(ctx *gin.Context) {
	var req models.AnalyticsEventInput
	if appErr := validation.BindJSON(ctx, &req, ac.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	if svcErr := ac.analyticsService.Track(ctx.Request.Context(), &req); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.Status(http.StatusAccepted)
}

// Dashboard handles GET /api/admin/analytics (admin only).
func (ac *AnalyticsController) Dashboard(ctx *gin.Context) {
	summary, svcErr := ac.analyticsService.Dashboard(ctx.Request.Context())
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
