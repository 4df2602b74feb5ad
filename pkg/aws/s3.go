package aws

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore uploads public assets to a single bucket.
type ObjectStore struct {
	uploader  *manager.Uploader
	presigner *s3.PresignClient
	bucket    string
	endpoint  string
	cdnDomain string
}

// NewObjectStore creates an S3-backed store. Path-style addressing is used when
// a custom endpoint (LocalStack) is configured.
func NewObjectStore(cfg sdkaws.Config, bucket, cdnDomain string) *ObjectStore {
	endpoint := CustomEndpoint()
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = endpoint != ""
	})
	return &ObjectStore{
		uploader:  manager.NewUploader(client),
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		endpoint:  endpoint,
		cdnDomain: cdnDomain,
	}
}

// Put streams body to key and returns the object's public URL.
func (o *ObjectStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := o.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(o.bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return o.PublicURL(key), nil
}

// PresignPut returns a presigned PUT URL for key plus the headers the client must send.
func (o *ObjectStore) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, map[string]string, error) {
	presigned, err := o.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(o.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return presigned.URL, headers, nil
}

// PublicURL prefers the CDN domain, then the custom endpoint, then the bucket's S3 host.
func (o *ObjectStore) PublicURL(key string) string {
	switch {
	case o.cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", strings.TrimRight(o.cdnDomain, "/"), key)
	case o.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(o.endpoint, "/"), o.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", o.bucket, key)
	}
}
