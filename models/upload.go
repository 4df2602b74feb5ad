package models

// Base64UploadRequest carries an image as base64 or a data URL.
type Base64UploadRequest struct {
	Data        string `json:"data" validate:"required"`
	Filename    string `json:"filename" validate:"required,max=200"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=image/jpeg image/png image/webp image/gif"`
}

// PresignRequest asks for a direct-to-bucket upload URL.
type PresignRequest struct {
	Filename    string `json:"filename" validate:"required,max=200"`
	ContentType string `json:"content_type" validate:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

// UploadResult describes a stored or presigned object.
type UploadResult struct {
	Key       string            `json:"key"`
	URL       string            `json:"url"`
	UploadURL string            `json:"upload_url,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}
