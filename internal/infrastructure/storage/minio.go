package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"soundreel-backend/internal/config"
)

// Category selects the validation rules for an upload.
type Category string

const (
	CategoryAudio Category = "audio"
	CategoryVideo Category = "video"
	CategoryImage Category = "image"
)

var (
	ErrMediaTooLarge        = errors.New("media payload exceeds the size limit")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

type mediaRule struct {
	maxBytes  int64
	mimeTypes map[string]string // content type -> file extension
}

var mediaRules = map[Category]mediaRule{
	CategoryAudio: {
		maxBytes:  15 << 20,
		mimeTypes: map[string]string{"audio/mpeg": ".mp3"},
	},
	CategoryVideo: {
		maxBytes:  50 << 20,
		mimeTypes: map[string]string{"video/mp4": ".mp4"},
	},
	CategoryImage: {
		maxBytes: 5 << 20,
		mimeTypes: map[string]string{
			"image/jpeg": ".jpg",
			"image/png":  ".png",
			"image/webp": ".webp",
		},
	},
}

// ValidateMedia enforces the per-category size and MIME constraints. Callers
// must run this before Put; the gateway itself does not re-check.
func ValidateMedia(category Category, size int64, contentType string) error {
	rule, ok := mediaRules[category]
	if !ok {
		return fmt.Errorf("%w: unknown category %q", ErrUnsupportedMediaType, category)
	}
	if _, ok := rule.mimeTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s not allowed for %s", ErrUnsupportedMediaType, contentType, category)
	}
	if size > rule.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d byte limit for %s", ErrMediaTooLarge, size, rule.maxBytes, category)
	}
	return nil
}

// MediaGateway stores media blobs and serves them by public locator.
type MediaGateway interface {
	// Put uploads a blob and returns its durable public locator.
	Put(ctx context.Context, category Category, ownerID string, data []byte, contentType string) (string, error)

	// Delete removes the object behind a locator. Callers treat failures as
	// best-effort cleanup and must not propagate them.
	Delete(ctx context.Context, locator string) error
}

// MinIOGateway implements MediaGateway on a MinIO/S3 bucket.
type MinIOGateway struct {
	client *minio.Client
	bucket string
}

func NewMinIOGateway(cfg config.MinIOConfig) (*MinIOGateway, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinIOGateway{client: client, bucket: cfg.Bucket}, nil
}

var _ MediaGateway = (*MinIOGateway)(nil)

// Put uploads under "<category>/<ownerID>/<uuid><ext>" and returns the public
// URL. Keys are never reused, so locators stay stable for the row lifetime.
func (g *MinIOGateway) Put(ctx context.Context, category Category, ownerID string, data []byte, contentType string) (string, error) {
	ext := mediaRules[category].mimeTypes[contentType]
	key := fmt.Sprintf("%s/%s/%s%s", category, ownerID, uuid.New().String(), ext)

	_, err := g.client.PutObject(
		ctx,
		g.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}

	scheme := "http"
	if g.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, g.client.EndpointURL().Host, g.bucket, key), nil
}

func (g *MinIOGateway) Delete(ctx context.Context, locator string) error {
	key, err := g.objectKey(locator)
	if err != nil {
		return err
	}

	if err := g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// objectKey maps a public locator back to its bucket key.
func (g *MinIOGateway) objectKey(locator string) (string, error) {
	marker := "/" + g.bucket + "/"
	idx := strings.Index(locator, marker)
	if idx < 0 {
		return "", fmt.Errorf("locator %q does not belong to bucket %s", locator, g.bucket)
	}
	return locator[idx+len(marker):], nil
}
