package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"storefront/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// ImageSigner issues time limited GET URLs for product images stored in a bucket.
type ImageSigner struct {
	api    minioAPI
	bucket string
	ttl    time.Duration
}

// Connect dials MinIO from cfg and makes sure the bucket exists.
func Connect(ctx context.Context, cfg config.Minio) (*ImageSigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewImageSignerWithAPI(ctx, client, cfg.Bucket, cfg.PresignTTL)
}

// NewImageSignerWithAPI allows injecting a mockable API (used in tests).
func NewImageSignerWithAPI(ctx context.Context, api minioAPI, bucket string, ttl time.Duration) (*ImageSigner, error) {
	s := &ImageSigner{
		api:    api,
		bucket: bucket,
		ttl:    ttl,
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

func (s *ImageSigner) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *ImageSigner) SignURL(ctx context.Context, key string) (string, error) {
	u, err := s.api.PresignedGetObject(ctx, s.bucket, key, s.ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}
