package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"chatarra-market/internal/config"
)

type minioDisk struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIO connects to MinIO and creates the bucket if it does not exist
func NewMinIO(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage/minio: STORAGE_ENDPOINT and STORAGE_BUCKET are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage/minio: create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage/minio: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("storage/minio: create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("minio bucket created")
	}

	baseURL := cfg.PublicURL
	if baseURL == "" || baseURL == "/uploads" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &minioDisk{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (d *minioDisk) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := d.client.PutObject(ctx, d.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage/minio: put %s: %w", key, err)
	}
	return d.URL(key), nil
}

func (d *minioDisk) Delete(ctx context.Context, key string) error {
	if err := d.client.RemoveObject(ctx, d.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage/minio: delete %s: %w", key, err)
	}
	return nil
}

func (d *minioDisk) URL(key string) string {
	return joinURL(d.baseURL, key)
}

func (d *minioDisk) Driver() string { return "minio" }
