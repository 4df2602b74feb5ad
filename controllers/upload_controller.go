package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
	"github.com/yashrajoria/streetwear-backend/validation"
)

// uploadOverhead covers multipart headers and the JSON envelope around the image.
const uploadOverhead = 64 << 10

type UploadController struct {
	uploadService services.UploadService
	validate      *validator.Validate
	maxBytes      int64
}

func NewUploadController(uploadService services.UploadService, validate *validator.Validate, maxBytes int64) *UploadController {
	if maxBytes <= 0 {
		maxBytes = services.DefaultMaxUploadBytes
	}
	return &UploadController{uploadService: uploadService, validate: validate, maxBytes: maxBytes}
}

// Upload handles POST /api/admin/uploads with either a multipart "file"
// field or a JSON base64 payload.
func (uc *UploadController) Upload(ctx *gin.Context) {
	var (
		result *models.UploadResult
		svcErr *services.ServiceError
	)

	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, uc.maxBytes+uploadOverhead)
		header, err := ctx.FormFile("file")
		if err != nil {
			if isBodyTooLarge(err) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": uc.tooLargeMessage()})
				return
			}
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		file, err := header.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
			return
		}
		defer file.Close()
		result, svcErr = uc.uploadService.UploadFile(ctx.Request.Context(), file)
	} else {
		// base64 inflates the image by a third.
		limit := uc.maxBytes/3*4 + uploadOverhead
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		var req models.Base64UploadRequest
		if appErr := validation.BindJSON(ctx, &req, uc.validate); appErr != nil {
			apperrors.Abort(ctx, appErr)
			return
		}
		result, svcErr = uc.uploadService.UploadBase64(ctx.Request.Context(), &req)
	}

	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

func (uc *UploadController) tooLargeMessage() string {
	return fmt.Sprintf("Image exceeds %d MB", uc.maxBytes>>20)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// Presign handles POST /api/admin/uploads/presign.
func (uc *UploadController) Presign(ctx *gin.Context) {
	var req models.PresignRequest
	if appErr := validation.BindJSON(ctx, &req, uc.validate); appErr != nil {
		apperrors.Abort(ctx, appErr)
		return
	}
	result, svcErr := uc.uploadService.Presign(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
