// Package storage persists oferta images on a local directory, MinIO or S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"chatarra-market/internal/config"
)

// Storage is an object store for uploaded images
type Storage interface {
	// Put stores r under key and returns its public URL
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Driver() string
}

// New builds the driver selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.LocalPath, cfg.PublicURL)
	case "minio":
		return NewMinIO(ctx, cfg)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q (use local, minio or s3)", cfg.Driver)
	}
}

// ContentType maps an image extension to its MIME type. ok is false for
// anything that is not an accepted image.
func ContentType(filename string) (contentType string, ok bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".png":
		return "image/png", true
	case ".gif":
		return "image/gif", true
	case ".webp":
		return "image/webp", true
	}
	return "application/octet-stream", false
}

// NewKey returns a unique object key under ofertas/ keeping the extension
func NewKey(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("ofertas/%s_%d%s", uuid.New().String()[:8], time.Now().Unix(), ext)
}

// KeyFromURL returns the object key behind url when url was issued by s
func KeyFromURL(s Storage, url string) (string, bool) {
	prefix := s.URL("")
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
