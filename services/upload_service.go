package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
)

const (
	// DefaultMaxUploadBytes is the largest image accepted.
	DefaultMaxUploadBytes = 5 << 20
	presignExpiry         = 15 * time.Minute
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStore stores uploaded objects and signs direct uploads.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, map[string]string, error)
	PublicURL(key string) string
}

// UploadService stores admin image uploads.
type UploadService interface {
	UploadFile(ctx context.Context, body io.Reader) (*models.UploadResult, *ServiceError)
	UploadBase64(ctx context.Context, req *models.Base64UploadRequest) (*models.UploadResult, *ServiceError)
	Presign(ctx context.Context, req *models.PresignRequest) (*models.UploadResult, *ServiceError)
}

type uploadServiceImpl struct {
	store    ObjectStore
	prefix   string
	maxBytes int64
	logger   *zap.Logger
	nowFunc  func() time.Time
}

func NewUploadService(store ObjectStore, prefix string, maxBytes int64, logger *zap.Logger) UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &uploadServiceImpl{
		store:    store,
		prefix:   prefix,
		maxBytes: maxBytes,
		logger:   logger,
		nowFunc:  time.Now,
	}
}

// UploadFile reads at most maxBytes+1 bytes so oversize bodies are rejected
// without buffering them whole.
func (s *uploadServiceImpl) UploadFile(ctx context.Context, body io.Reader) (*models.UploadResult, *ServiceError) {
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, badRequest("Failed to read upload")
	}
	return s.save(ctx, data, "multipart")
}

// UploadBase64 accepts raw base64 or a data URL.
func (s *uploadServiceImpl) UploadBase64(ctx context.Context, req *models.Base64UploadRequest) (*models.UploadResult, *ServiceError) {
	payload := req.Data
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.Contains(payload[:comma], ";base64") {
			return nil, badRequest("Malformed data URL")
		}
		payload = payload[comma+1:]
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+2 {
		return nil, badRequest(fmt.Sprintf("Image exceeds %d MB", s.maxBytes>>20))
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, badRequest("Invalid base64 data")
	}
	return s.save(ctx, data, "base64")
}

func (s *uploadServiceImpl) save(ctx context.Context, data []byte, mode string) (*models.UploadResult, *ServiceError) {
	if len(data) == 0 {
		return nil, badRequest("Empty upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, badRequest(fmt.Sprintf("Image exceeds %d MB", s.maxBytes>>20))
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, badRequest("Only JPEG, PNG, WebP and GIF images are allowed")
	}

	key := s.objectKey(ext)
	url, err := s.store.Put(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to store upload", zap.Error(err), zap.String("key", key))
		return nil, internal(err)
	}

	metrics.UploadsTotal.WithLabelValues(mode).Inc()
	return &models.UploadResult{Key: key, URL: url}, nil
}

func (s *uploadServiceImpl) Presign(ctx context.Context, req *models.PresignRequest) (*models.UploadResult, *ServiceError) {
	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		return nil, badRequest("Only JPEG, PNG, WebP and GIF images are allowed")
	}
	key := s.objectKey(ext)
	uploadURL, headers, err := s.store.PresignPut(ctx, key, req.ContentType, presignExpiry)
	if err != nil {
		return nil, internal(err)
	}

	metrics.UploadsTotal.WithLabelValues("presign").Inc()
	return &models.UploadResult{
		Key:       key,
		URL:       s.store.PublicURL(key),
		UploadURL: uploadURL,
		Headers:   headers,
	}, nil
}

// objectKey builds prefix/YYYY/MM/DD/<uuid><ext>.
func (s *uploadServiceImpl) objectKey(ext string) string {
	prefix := s.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + s.nowFunc().UTC().Format("2006/01/02/") + uuid.NewString() + ext
}
